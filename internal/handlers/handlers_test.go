package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matchup/internal/events"
	"matchup/internal/models"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rr := srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)
	rr := srv.do(t, http.MethodPost, "/session", "", map[string]string{"role": "field_manager", "name": "Alice Manager", "field_id": "field1"})
	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody[map[string]any](t, rr)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, []any{"field_manager_home"}, body["tabs"])

	rr = srv.do(t, http.MethodGet, "/fields/field1/wallet", body["token"].(string), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodPost, "/session", "", map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_role", errorCode(t, rr))

	rr = srv.do(t, http.MethodPost, "/session", "", map[string]string{"role": "field_manager", "field_id": "nowhere"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRequiresSession(t *testing.T) {
	srv := newTestServer(t)
	rr := srv.do(t, http.MethodGet, "/fields", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListFieldsFormatsMoney(t *testing.T) {
	srv := newTestServer(t)
	rr := srv.do(t, http.MethodGet, "/fields", tokenFor(t, "p1", models.RolePlayer, ""), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fields := decodeBody[[]map[string]any](t, rr)
	require.Len(t, fields, 2)
	assert.Equal(t, "field1", fields[0]["id"])
	assert.Equal(t, "50.00", fields[0]["pricing_default"])
}

func TestCreateMatchFlow(t *testing.T) {
	srv := newTestServer(t)
	organizer := tokenFor(t, "org1", models.RoleOrganizer, "")

	rr := srv.do(t, http.MethodPost, "/matches", organizer, map[string]any{"title": "Tuesday 5v5", "field_id": "field1", "per_player_fee": "7.5"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "7.50", created["per_player_fee"])
	assert.Equal(t, float64(0), created["confirmed_count"])

	rr = srv.do(t, http.MethodGet, "/matches?field_id=field1", organizer, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	listed := decodeBody[[]map[string]any](t, rr)
	require.Len(t, listed, 2)
	assert.Equal(t, created["id"], listed[0]["id"])
}

func TestCreateMatchRejections(t *testing.T) {
	srv := newTestServer(t)
	organizer := tokenFor(t, "org1", models.RoleOrganizer, "")

	rr := srv.do(t, http.MethodPost, "/matches", organizer, map[string]any{"title": "", "field_id": "field1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "empty_title", errorCode(t, rr))

	rr = srv.do(t, http.MethodPost, "/matches", organizer, map[string]any{"title": "x", "field_id": "field1", "per_player_fee": "abc"})
	assert.Equal(t, "invalid_fee", errorCode(t, rr))

	rr = srv.do(t, http.MethodPost, "/matches", tokenFor(t, "p1", models.RolePlayer, ""), map[string]any{"title": "x", "field_id": "field1"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(t, http.MethodGet, "/matches", organizer, nil)
	assert.Len(t, decodeBody[[]map[string]any](t, rr), 2)
}

func TestConfirmMatchIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	player := tokenFor(t, "player1", models.RolePlayer, "")

	rr := srv.do(t, http.MethodPost, "/matches/m1/confirm", player, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	first := decodeBody[map[string]any](t, rr)
	assert.Equal(t, false, first["already_confirmed"])

	rr = srv.do(t, http.MethodPost, "/matches/m1/confirm", player, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	second := decodeBody[map[string]any](t, rr)
	assert.Equal(t, true, second["already_confirmed"])
	assert.Equal(t, float64(7), second["match"].(map[string]any)["confirmed_count"])

	rr = srv.do(t, http.MethodGet, "/fields/field1/wallet", tokenFor(t, "mgr1", models.RoleFieldManager, "field1"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "257.00", decodeBody[map[string]any](t, rr)["balance"])

	rr = srv.do(t, http.MethodPost, "/matches/ghost/confirm", player, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "match_not_found", errorCode(t, rr))
}

func TestPayoutScenario(t *testing.T) {
	srv := newTestServer(t)
	manager := tokenFor(t, "mgr1", models.RoleFieldManager, "field1")

	rr := srv.do(t, http.MethodPost, "/fields/field1/payouts", manager, map[string]string{"amount": "100"})
	require.Equal(t, http.StatusCreated, rr.Code)
	payout := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "100.00", payout["amount"])
	assert.Equal(t, "requested", payout["status"])
	assert.Equal(t, "Test User", payout["manager_name"])

	rr = srv.do(t, http.MethodPost, "/fields/field1/payouts", manager, map[string]string{"amount": "9999.99"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "insufficient_funds", errorCode(t, rr))

	rr = srv.do(t, http.MethodPost, "/fields/field1/payouts", manager, map[string]string{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_amount", errorCode(t, rr))

	rr = srv.do(t, http.MethodGet, "/fields/field1/payouts", manager, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rr), 2)

	rr = srv.do(t, http.MethodGet, "/fields/field1/wallet", manager, nil)
	wallet := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "150.00", wallet["balance"])
	assert.Equal(t, "150.00", wallet["pending_payout"])
}

func TestManagerScopedToField(t *testing.T) {
	srv := newTestServer(t)
	manager := tokenFor(t, "mgr2", models.RoleFieldManager, "field2")
	rr := srv.do(t, http.MethodGet, "/fields/field1/wallet", manager, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = srv.do(t, http.MethodGet, "/fields/field1/wallet", tokenFor(t, "p1", models.RolePlayer, ""), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = srv.do(t, http.MethodGet, "/fields/field1/wallet", tokenFor(t, "a1", models.RoleAdmin, ""), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminPayoutTransitionsAndReconcile(t *testing.T) {
	srv := newTestServer(t)
	admin := tokenFor(t, "admin1", models.RoleAdmin, "")

	rr := srv.do(t, http.MethodPost, "/admin/payouts/p1/status", admin, map[string]string{"status": "processing"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = srv.do(t, http.MethodPost, "/admin/payouts/p1/status", admin, map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "paid", decodeBody[map[string]any](t, rr)["status"])

	rr = srv.do(t, http.MethodPost, "/admin/payouts/p1/status", admin, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "invalid_transition", errorCode(t, rr))

	rr = srv.do(t, http.MethodGet, "/admin/reconcile", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decodeBody[map[string]any](t, rr)["balanced"])

	rr = srv.do(t, http.MethodGet, "/admin/audit?limit=10", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rr), 2)

	rr = srv.do(t, http.MethodGet, "/admin/wallets", tokenFor(t, "mgr1", models.RoleFieldManager, ""), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestPromotionEndpoints(t *testing.T) {
	srv := newTestServer(t)
	manager := tokenFor(t, "mgr1", models.RoleFieldManager, "field1")

	rr := srv.do(t, http.MethodPost, "/fields/field1/promotions", manager, map[string]any{"title": "Happy Hour", "promo_code": "happy5", "discount_percent": 5})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "HAPPY5", created["promo_code"])
	assert.Equal(t, "Custom field promotion", created["description"])

	rr = srv.do(t, http.MethodPost, "/fields/field1/promotions", manager, map[string]any{"title": " "})
	assert.Equal(t, "empty_title", errorCode(t, rr))

	rr = srv.do(t, http.MethodPost, "/promotions/promo1/active", manager, map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decodeBody[map[string]any](t, rr)["is_active"])

	other := tokenFor(t, "mgr2", models.RoleFieldManager, "field2")
	rr = srv.do(t, http.MethodPost, "/promotions/promo1/active", other, map[string]bool{"active": true})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(t, http.MethodGet, "/promotions?field_id=field1", manager, nil)
	assert.Len(t, decodeBody[[]map[string]any](t, rr), 2)

	rr = srv.do(t, http.MethodGet, "/ads?field_id=field2", manager, nil)
	assert.Len(t, decodeBody[[]map[string]any](t, rr), 1)
}

func TestScreens(t *testing.T) {
	srv := newTestServer(t)
	player := tokenFor(t, "player1", models.RolePlayer, "")

	rr := srv.do(t, http.MethodGet, "/screens/match_detail?match_id=m1", player, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "dark", payload["theme"].(map[string]any)["name"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, false, data["confirmed"])
	assert.Equal(t, "field1", data["field"].(map[string]any)["id"])
	assert.Equal(t, float64(6), data["match"].(map[string]any)["confirmed_count"])
	assert.NotContains(t, data, "attendee_count")

	rr = srv.do(t, http.MethodPost, "/matches/m1/confirm", player, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = srv.do(t, http.MethodGet, "/screens/match_detail?match_id=m1", player, nil)
	data = decodeBody[map[string]any](t, rr)["data"].(map[string]any)
	assert.Equal(t, true, data["confirmed"])
	assert.Equal(t, float64(7), data["match"].(map[string]any)["confirmed_count"])

	rr = srv.do(t, http.MethodGet, "/screens/match_detail?match_id=ghost", player, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	payload = decodeBody[map[string]any](t, rr)
	assert.Equal(t, true, payload["not_found"])
	assert.Nil(t, payload["data"])

	rr = srv.do(t, http.MethodGet, "/screens/match_detail", player, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "missing_param", errorCode(t, rr))

	rr = srv.do(t, http.MethodGet, "/screens/settings", player, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = srv.do(t, http.MethodGet, "/screens/admin_overview", player, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	manager := tokenFor(t, "mgr1", models.RoleFieldManager, "field1")
	rr = srv.do(t, http.MethodGet, "/screens/field_manager_home?field_id=field1", manager, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data = decodeBody[map[string]any](t, rr)["data"].(map[string]any)
	assert.Equal(t, "250.00", data["wallet"].(map[string]any)["balance"])

	rr = srv.do(t, http.MethodGet, "/screens/admin_overview", tokenFor(t, "a1", models.RoleAdmin, ""), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data = decodeBody[map[string]any](t, rr)["data"].(map[string]any)
	assert.Len(t, data["open_payouts"], 1)
}

func TestWSEventsStreamsChanges(t *testing.T) {
	srv := newTestServer(t)
	server := httptest.NewServer(srv.handler)
	defer server.Close()

	manager := tokenFor(t, "mgr1", models.RoleFieldManager, "field1")
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events?token=" + manager
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return srv.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	srv.bus.Publish(events.Event{Type: events.MatchCreated, FieldID: "field2", EntityID: "other"})
	rr := srv.do(t, http.MethodPost, "/fields/field1/payouts", manager, map[string]string{"amount": "10"})
	require.Equal(t, http.StatusCreated, rr.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event events.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.PayoutRequested, event.Type)
	assert.Equal(t, "field1", event.FieldID)
}
