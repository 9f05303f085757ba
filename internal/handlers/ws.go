package handlers

import (
	"net/http"

	"matchup/internal/websocket"
)

// WSEvents streams change events. Managers bound to a field only see that
// field; everyone else may filter with ?field_id=.
func (h *Handler) WSEvents(w http.ResponseWriter, r *http.Request) {
	fieldID := r.URL.Query().Get("field_id")
	if identity := callerIdentity(r); identity.FieldID != "" {
		fieldID = identity.FieldID
	}
	websocket.ServeWS(w, r, h.upgrader, h.hub, fieldID)
}
