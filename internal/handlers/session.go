package handlers

import (
	"net/http"
	"strings"

	"matchup/internal/middleware"
	"matchup/internal/models"
	"matchup/internal/navigation"
	"matchup/internal/session"
	"matchup/internal/validator"
)

type createSessionRequest struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	UserID  string `json:"user_id"`
	FieldID string `json:"field_id"`
}

// CreateSession switches the caller into a role. There is no credential
// check; the token only carries the chosen identity.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	role, ok := models.ParseRole(strings.TrimSpace(req.Role))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_role")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = string(role)
	}
	if err := validator.ValidateName(name); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	fieldID := strings.TrimSpace(req.FieldID)
	if fieldID != "" {
		if _, err := h.fields.GetField(r.Context(), fieldID); err != nil {
			h.respondServiceError(w, r, err)
			return
		}
	}
	token, identity, err := session.Generate(h.cfg.SessionSecret, session.Identity{
		UserID:  strings.TrimSpace(req.UserID),
		Name:    name,
		Role:    role,
		FieldID: fieldID,
	}, h.cfg.SessionTTL, h.now())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  identity,
		"tabs":  navigation.Tabs(role),
	})
}

func callerIdentity(r *http.Request) session.Identity {
	identity, _ := middleware.IdentityFromContext(r.Context())
	return identity
}

// canManageField reports whether the caller may act on fieldID's money and
// promotions. Managers without a bound field manage any field.
func canManageField(identity session.Identity, fieldID string) bool {
	switch identity.Role {
	case models.RoleAdmin:
		return true
	case models.RoleFieldManager:
		return identity.FieldID == "" || identity.FieldID == fieldID
	}
	return false
}
