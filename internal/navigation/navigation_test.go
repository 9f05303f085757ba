package navigation

import (
	"net/url"
	"testing"

	"matchup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	route, err := Parse(ScreenMatchDetail, url.Values{"match_id": {"m1"}}.Get)
	require.NoError(t, err)
	assert.Equal(t, MatchDetail{MatchID: "m1"}, route)

	route, err = Parse(ScreenFieldManagerHome, url.Values{"field_id": {"field2"}}.Get)
	require.NoError(t, err)
	assert.Equal(t, FieldManagerHome{FieldID: "field2"}, route)

	route, err = Parse(ScreenPlayerHome, url.Values{}.Get)
	require.NoError(t, err)
	assert.Equal(t, ScreenPlayerHome, route.Screen())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("settings", url.Values{}.Get)
	assert.ErrorIs(t, err, ErrUnknownScreen)
	_, err = Parse(ScreenFieldDetail, url.Values{}.Get)
	assert.ErrorIs(t, err, ErrMissingParam)
	_, err = Parse(ScreenMatchDetail, url.Values{"field_id": {"field1"}}.Get)
	assert.ErrorIs(t, err, ErrMissingParam)
}

func TestTabs(t *testing.T) {
	assert.Equal(t, []string{ScreenPlayerHome, ScreenPlayerNotifications}, Tabs(models.RolePlayer))
	assert.Equal(t, []string{ScreenAdminOverview}, Tabs(models.RoleAdmin))
	assert.Empty(t, Tabs(models.Role("guest")))

	tabs := Tabs(models.RolePlayer)
	tabs[0] = "mutated"
	assert.Equal(t, ScreenPlayerHome, Tabs(models.RolePlayer)[0])
}

func TestReachable(t *testing.T) {
	cases := []struct {
		role  models.Role
		route Route
		want  bool
	}{
		{models.RolePlayer, PlayerHome{}, true},
		{models.RolePlayer, MatchDetail{MatchID: "m1"}, true},
		{models.RolePlayer, OrganizerHome{}, false},
		{models.RolePlayer, AdminOverview{}, false},
		{models.RoleOrganizer, OrganizerHome{}, true},
		{models.RoleOrganizer, FieldDetail{FieldID: "field1"}, true},
		{models.RoleOrganizer, FieldManagerHome{FieldID: "field1"}, false},
		{models.RoleFieldManager, FieldManagerHome{FieldID: "field1"}, true},
		{models.RoleFieldManager, PlayerNotifications{}, false},
		{models.RoleAdmin, FieldManagerHome{FieldID: "field1"}, true},
		{models.Role("guest"), MatchDetail{MatchID: "m1"}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Reachable(tc.role, tc.route), "%s -> %s", tc.role, tc.route.Screen())
	}
}
