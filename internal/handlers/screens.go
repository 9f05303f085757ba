package handlers

import (
	"context"
	"errors"
	"net/http"

	"matchup/internal/config"
	"matchup/internal/models"
	"matchup/internal/navigation"
	"matchup/internal/services"
	"matchup/internal/session"

	"github.com/go-chi/chi/v5"
)

type screenPayload struct {
	Screen   string       `json:"screen"`
	Theme    config.Theme `json:"theme"`
	Tabs     []string     `json:"tabs"`
	NotFound bool         `json:"not_found,omitempty"`
	Data     any          `json:"data,omitempty"`
}

// errEntityMissing marks a screen whose subject does not exist. The screen
// still renders, with not_found set.
var errEntityMissing = errors.New("screen entity missing")

// Screen renders the view model of one app screen for the caller's role.
func (h *Handler) Screen(w http.ResponseWriter, r *http.Request) {
	identity := callerIdentity(r)
	route, err := navigation.Parse(chi.URLParam(r, "screen"), r.URL.Query().Get)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if !navigation.Reachable(identity.Role, route) {
		respondError(w, http.StatusForbidden, "screen_not_reachable")
		return
	}
	if home, ok := route.(navigation.FieldManagerHome); ok && !canManageField(identity, home.FieldID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	payload := screenPayload{
		Screen: route.Screen(),
		Theme:  h.cfg.Theme,
		Tabs:   navigation.Tabs(identity.Role),
	}
	data, err := h.screenData(r.Context(), identity, route)
	switch {
	case errors.Is(err, errEntityMissing):
		payload.NotFound = true
	case err != nil:
		h.respondServiceError(w, r, err)
		return
	default:
		payload.Data = data
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) screenData(ctx context.Context, identity session.Identity, route navigation.Route) (any, error) {
	switch rt := route.(type) {
	case navigation.PlayerHome:
		return h.playerHome(ctx)
	case navigation.PlayerNotifications:
		return h.playerNotifications(ctx, identity)
	case navigation.MatchDetail:
		return h.matchDetail(ctx, identity, rt.MatchID)
	case navigation.FieldDetail:
		return h.fieldDetail(ctx, rt.FieldID)
	case navigation.OrganizerHome:
		return h.organizerHome(ctx, identity)
	case navigation.FieldManagerHome:
		return h.fieldManagerHome(ctx, rt.FieldID)
	case navigation.AdminOverview:
		return h.adminOverview(ctx)
	}
	return nil, navigation.ErrUnknownScreen
}

func missing(err error, notFound error) error {
	if errors.Is(err, notFound) {
		return errEntityMissing
	}
	return err
}

func (h *Handler) playerHome(ctx context.Context) (any, error) {
	matches, err := h.matches.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := h.fieldViews(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := h.promotions.ListAds(ctx, "")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"matches": newMatchViews(matches),
		"fields":  fields,
		"ads":     activeAds(ads),
	}, nil
}

func (h *Handler) playerNotifications(ctx context.Context, identity session.Identity) (any, error) {
	logs, err := h.ledger.ListAudit(ctx, 200, 0)
	if err != nil {
		return nil, err
	}
	notifications := []models.AuditLog{}
	for _, entry := range logs {
		if entry.Actor == identity.UserID {
			notifications = append(notifications, entry)
		}
	}
	return map[string]any{"notifications": notifications}, nil
}

func (h *Handler) matchDetail(ctx context.Context, identity session.Identity, matchID string) (any, error) {
	match, err := h.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, missing(err, services.ErrMatchNotFound)
	}
	attendees, err := h.matches.ListAttendees(ctx, matchID)
	if err != nil {
		return nil, err
	}
	confirmed := false
	for _, attendee := range attendees {
		if attendee.PlayerID == identity.UserID {
			confirmed = true
			break
		}
	}
	data := map[string]any{
		"match":     newMatchView(match),
		"confirmed": confirmed,
	}
	if field, err := h.fields.GetField(ctx, match.FieldID); err == nil {
		data["field"] = newFieldView(field)
	} else if !errors.Is(err, services.ErrFieldNotFound) {
		return nil, err
	}
	return data, nil
}

func (h *Handler) fieldDetail(ctx context.Context, fieldID string) (any, error) {
	field, err := h.fields.GetField(ctx, fieldID)
	if err != nil {
		return nil, missing(err, services.ErrFieldNotFound)
	}
	matches, err := h.matches.ListMatchesForField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	promotions, err := h.promotions.ListPromotions(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	ads, err := h.promotions.ListAds(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"field":      newFieldView(field),
		"matches":    newMatchViews(matches),
		"promotions": activePromotions(promotions),
		"ads":        activeAds(ads),
	}, nil
}

func (h *Handler) organizerHome(ctx context.Context, identity session.Identity) (any, error) {
	matches, err := h.matches.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	mine := []models.Match{}
	for _, match := range matches {
		if match.OrganizerID == identity.UserID {
			mine = append(mine, match)
		}
	}
	fields, err := h.fieldViews(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"matches":    newMatchViews(matches),
		"my_matches": newMatchViews(mine),
		"fields":     fields,
	}, nil
}

func (h *Handler) fieldManagerHome(ctx context.Context, fieldID string) (any, error) {
	field, err := h.fields.GetField(ctx, fieldID)
	if err != nil {
		return nil, missing(err, services.ErrFieldNotFound)
	}
	wallet, err := h.ledger.GetWallet(ctx, fieldID)
	if err != nil {
		return nil, missing(err, services.ErrWalletNotFound)
	}
	payouts, err := h.ledger.ListPayouts(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	promotions, err := h.promotions.ListPromotions(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	matches, err := h.matches.ListMatchesForField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"field":      newFieldView(field),
		"wallet":     newWalletView(wallet),
		"payouts":    newPayoutViews(payouts),
		"promotions": promotions,
		"matches":    newMatchViews(matches),
	}, nil
}

func (h *Handler) adminOverview(ctx context.Context) (any, error) {
	wallets, err := h.ledger.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	walletViews := make([]walletView, 0, len(wallets))
	for _, wallet := range wallets {
		walletViews = append(walletViews, newWalletView(wallet))
	}
	payouts, err := h.ledger.ListPayouts(ctx, "")
	if err != nil {
		return nil, err
	}
	open := []models.PayoutRequest{}
	for _, payout := range payouts {
		if !payout.Status.Terminal() {
			open = append(open, payout)
		}
	}
	report, err := h.ledger.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"wallets":      walletViews,
		"open_payouts": newPayoutViews(open),
		"reconcile":    newDriftViews(report),
	}, nil
}

func (h *Handler) fieldViews(ctx context.Context) ([]fieldView, error) {
	fields, err := h.fields.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]fieldView, 0, len(fields))
	for _, field := range fields {
		views = append(views, newFieldView(field))
	}
	return views, nil
}

func activeAds(ads []models.Ad) []models.Ad {
	active := []models.Ad{}
	for _, ad := range ads {
		if ad.IsActive {
			active = append(active, ad)
		}
	}
	return active
}

func activePromotions(promotions []models.Promotion) []models.Promotion {
	active := []models.Promotion{}
	for _, promotion := range promotions {
		if promotion.IsActive {
			active = append(active, promotion)
		}
	}
	return active
}
