package handlers

import (
	"net/http"
	"time"

	"matchup/internal/models"
	"matchup/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	fieldID := r.URL.Query().Get("field_id")
	var matches []models.Match
	var err error
	if fieldID != "" {
		matches, err = h.matches.ListMatchesForField(r.Context(), fieldID)
	} else {
		matches, err = h.matches.ListMatches(r.Context())
	}
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newMatchViews(matches))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matches.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newMatchView(match))
}

type createMatchRequest struct {
	Title        string     `json:"title"`
	FieldID      string     `json:"field_id"`
	PerPlayerFee string     `json:"per_player_fee"`
	MaxPlayers   int        `json:"max_players"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	fee, err := parseFee(req.PerPlayerFee)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	match, err := h.matches.CreateMatch(r.Context(), services.CreateMatchRequest{
		OrganizerID:       callerIdentity(r).UserID,
		Title:             req.Title,
		FieldID:           req.FieldID,
		PerPlayerFeeCents: fee,
		MaxPlayers:        req.MaxPlayers,
		ScheduledAt:       req.ScheduledAt,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newMatchView(match))
}

func (h *Handler) ConfirmMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.matches.ConfirmAndPay(r.Context(), chi.URLParam(r, "id"), callerIdentity(r).UserID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"match":             newMatchView(result.Match),
		"already_confirmed": result.AlreadyConfirmed,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	identity := callerIdentity(r)
	matchID := chi.URLParam(r, "id")
	if identity.Role != models.RoleAdmin {
		existing, err := h.matches.GetMatch(r.Context(), matchID)
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}
		if existing.OrganizerID != "" && existing.OrganizerID != identity.UserID {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}
	}
	match, err := h.matches.UpdateMatchStatus(r.Context(), identity.UserID, matchID, models.MatchStatus(req.Status))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newMatchView(match))
}
