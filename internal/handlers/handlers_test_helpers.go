package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"matchup/internal/config"
	"matchup/internal/events"
	"matchup/internal/logging"
	"matchup/internal/models"
	"matchup/internal/services"
	"matchup/internal/session"
	"matchup/internal/store"
	"matchup/internal/websocket"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testServer struct {
	handler http.Handler
	bus     *events.Bus
	hub     *websocket.Hub
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	now := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	st := store.NewSeededMemoryStore(store.DefaultSeed(now), now)
	logger := logging.Discard()
	bus := events.NewBus()
	hub := websocket.NewHub(logger)
	ch, cancel := bus.Subscribe(64)
	go hub.Run(ch)
	t.Cleanup(cancel)

	cfg := config.Config{
		SessionSecret:  testSecret,
		SessionTTL:     time.Hour,
		AllowedOrigins: "*",
		Theme:          config.ThemeByName("dark"),
	}
	h := New(cfg,
		services.NewFieldService(st),
		services.NewMatchService(st, bus, logger, 14),
		services.NewLedgerService(st, bus, logger),
		services.NewPromotionService(st, bus, logger),
		hub,
		logger,
	)
	return testServer{handler: h.Routes(), bus: bus, hub: hub}
}

func tokenFor(t *testing.T, userID string, role models.Role, fieldID string) string {
	t.Helper()
	token, _, err := session.Generate(testSecret, session.Identity{UserID: userID, Name: "Test User", Role: role, FieldID: fieldID}, time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out), rr.Body.String())
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, rr)["error"]
}
