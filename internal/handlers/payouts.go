package handlers

import (
	"net/http"

	"matchup/internal/services"

	"github.com/go-chi/chi/v5"
)

// managedField returns the {id} field when the caller may manage it, and
// writes a 403 otherwise.
func managedField(w http.ResponseWriter, r *http.Request) (string, bool) {
	fieldID := chi.URLParam(r, "id")
	if !canManageField(callerIdentity(r), fieldID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return "", false
	}
	return fieldID, true
}

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := managedField(w, r)
	if !ok {
		return
	}
	wallet, err := h.ledger.GetWallet(r.Context(), fieldID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newWalletView(wallet))
}

func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := managedField(w, r)
	if !ok {
		return
	}
	payouts, err := h.ledger.ListPayouts(r.Context(), fieldID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPayoutViews(payouts))
}

type payoutRequest struct {
	Amount      string `json:"amount"`
	ManagerName string `json:"manager_name"`
}

func (h *Handler) RequestPayout(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := managedField(w, r)
	if !ok {
		return
	}
	var req payoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	identity := callerIdentity(r)
	managerName := req.ManagerName
	if managerName == "" {
		managerName = identity.Name
	}
	payout, err := h.ledger.RequestPayout(r.Context(), services.PayoutRequestInput{
		Actor:       identity.UserID,
		FieldID:     fieldID,
		ManagerName: managerName,
		AmountCents: amount,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newPayoutView(payout))
}

func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := managedField(w, r)
	if !ok {
		return
	}
	entries, err := h.ledger.ListLedger(r.Context(), fieldID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newLedgerViews(entries))
}
