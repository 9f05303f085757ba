package handlers

import (
	"net/http"
	"strconv"

	"matchup/internal/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.ledger.ListWallets(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	views := make([]walletView, 0, len(wallets))
	for _, wallet := range wallets {
		views = append(views, newWalletView(wallet))
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handler) AdminListPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.ledger.ListPayouts(r.Context(), r.URL.Query().Get("field_id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPayoutViews(payouts))
}

func (h *Handler) AdminTransitionPayout(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	payout, err := h.ledger.TransitionPayout(r.Context(), callerIdentity(r).UserID, chi.URLParam(r, "id"), models.PayoutStatus(req.Status))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPayoutView(payout))
}

func (h *Handler) AdminListAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	logs, err := h.ledger.ListAudit(r.Context(), limit, offset)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

func (h *Handler) AdminReconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.Reconcile(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	balanced := true
	for _, drift := range report {
		balanced = balanced && drift.Balanced
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"balanced": balanced,
		"wallets":  newDriftViews(report),
	})
}
