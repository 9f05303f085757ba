// Package navigation describes the screens of the app as a closed set of
// typed routes, and which roles may reach them.
package navigation

import (
	"errors"
	"fmt"

	"matchup/internal/models"
)

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrMissingParam  = errors.New("missing route parameter")
)

const (
	ScreenPlayerHome          = "player_home"
	ScreenPlayerNotifications = "player_notifications"
	ScreenMatchDetail         = "match_detail"
	ScreenFieldDetail         = "field_detail"
	ScreenOrganizerHome       = "organizer_home"
	ScreenFieldManagerHome    = "field_manager_home"
	ScreenAdminOverview       = "admin_overview"
)

// Route is implemented only by the types in this package.
type Route interface {
	Screen() string
	route()
}

type PlayerHome struct{}
type PlayerNotifications struct{}
type OrganizerHome struct{}
type AdminOverview struct{}

type MatchDetail struct{ MatchID string }
type FieldDetail struct{ FieldID string }
type FieldManagerHome struct{ FieldID string }

func (PlayerHome) Screen() string          { return ScreenPlayerHome }
func (PlayerNotifications) Screen() string { return ScreenPlayerNotifications }
func (MatchDetail) Screen() string         { return ScreenMatchDetail }
func (FieldDetail) Screen() string         { return ScreenFieldDetail }
func (OrganizerHome) Screen() string       { return ScreenOrganizerHome }
func (FieldManagerHome) Screen() string    { return ScreenFieldManagerHome }
func (AdminOverview) Screen() string       { return ScreenAdminOverview }

func (PlayerHome) route()          {}
func (PlayerNotifications) route() {}
func (MatchDetail) route()         {}
func (FieldDetail) route()         {}
func (OrganizerHome) route()       {}
func (FieldManagerHome) route()    {}
func (AdminOverview) route()       {}

// Parse builds a Route from a screen name and its parameters. Parameters
// are looked up with get, which is usually url.Values.Get.
func Parse(screen string, get func(string) string) (Route, error) {
	switch screen {
	case ScreenPlayerHome:
		return PlayerHome{}, nil
	case ScreenPlayerNotifications:
		return PlayerNotifications{}, nil
	case ScreenOrganizerHome:
		return OrganizerHome{}, nil
	case ScreenAdminOverview:
		return AdminOverview{}, nil
	case ScreenMatchDetail:
		id, err := requireParam(get, "match_id")
		return MatchDetail{MatchID: id}, err
	case ScreenFieldDetail:
		id, err := requireParam(get, "field_id")
		return FieldDetail{FieldID: id}, err
	case ScreenFieldManagerHome:
		id, err := requireParam(get, "field_id")
		return FieldManagerHome{FieldID: id}, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, screen)
}

func requireParam(get func(string) string, key string) (string, error) {
	value := get(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return value, nil
}

var tabs = map[models.Role][]string{
	models.RolePlayer:       {ScreenPlayerHome, ScreenPlayerNotifications},
	models.RoleOrganizer:    {ScreenOrganizerHome},
	models.RoleFieldManager: {ScreenFieldManagerHome},
	models.RoleAdmin:        {ScreenAdminOverview},
}

// Tabs lists the top-level screens of a role, in display order.
func Tabs(role models.Role) []string {
	return append([]string(nil), tabs[role]...)
}

// Reachable reports whether role may open route. Detail screens are open to
// every role; home screens only to their own role. Admin sees everything.
func Reachable(role models.Role, route Route) bool {
	if role == models.RoleAdmin {
		return true
	}
	switch route.(type) {
	case MatchDetail, FieldDetail:
		_, known := tabs[role]
		return known
	}
	for _, screen := range tabs[role] {
		if screen == route.Screen() {
			return true
		}
	}
	return false
}
