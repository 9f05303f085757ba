package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup/internal/money"
	"matchup/internal/navigation"
	"matchup/internal/services"
	"matchup/internal/store"
	"matchup/internal/validator"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{validator.ErrEmptyTitle, http.StatusBadRequest, "empty_title"},
	{validator.ErrTitleTooLong, http.StatusBadRequest, "title_too_long"},
	{validator.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{money.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{validator.ErrInvalidFee, http.StatusBadRequest, "invalid_fee"},
	{validator.ErrInvalidDiscount, http.StatusBadRequest, "invalid_discount"},
	{validator.ErrInvalidPromoCode, http.StatusBadRequest, "invalid_promo_code"},
	{validator.ErrInvalidName, http.StatusBadRequest, "invalid_name"},
	{services.ErrInvalidMaxPlayers, http.StatusBadRequest, "invalid_max_players"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{navigation.ErrMissingParam, http.StatusBadRequest, "missing_param"},
	{services.ErrFieldNotFound, http.StatusNotFound, "field_not_found"},
	{services.ErrMatchNotFound, http.StatusNotFound, "match_not_found"},
	{services.ErrWalletNotFound, http.StatusNotFound, "wallet_not_found"},
	{services.ErrPayoutNotFound, http.StatusNotFound, "payout_not_found"},
	{services.ErrPromotionNotFound, http.StatusNotFound, "promotion_not_found"},
	{navigation.ErrUnknownScreen, http.StatusNotFound, "unknown_screen"},
	{store.ErrNotFound, http.StatusNotFound, "not_found"},
	{services.ErrInsufficientFunds, http.StatusConflict, "insufficient_funds"},
	{services.ErrMatchFull, http.StatusConflict, "match_full"},
	{services.ErrMatchClosed, http.StatusConflict, "match_closed"},
	{services.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
}

// respondServiceError maps domain errors to a status and code. Anything
// unrecognised is logged and reported as a 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.err) {
			respondError(w, mapping.status, mapping.code)
			return
		}
	}
	h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	respondError(w, http.StatusInternalServerError, "internal_error")
}
