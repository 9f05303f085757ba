package handlers

import (
	"net/http"

	"matchup/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.ListPromotions(r.Context(), r.URL.Query().Get("field_id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, promotions)
}

type createPromotionRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DiscountPercent *int    `json:"discount_percent"`
	PromoCode       *string `json:"promo_code"`
	IsActive        *bool   `json:"is_active"`
}

func (h *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := managedField(w, r)
	if !ok {
		return
	}
	var req createPromotionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	promotion, err := h.promotions.CreatePromotion(r.Context(), services.CreatePromotionRequest{
		Actor:           callerIdentity(r).UserID,
		FieldID:         fieldID,
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		PromoCode:       req.PromoCode,
		IsActive:        req.IsActive,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, promotion)
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) SetPromotionActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	promotionID := chi.URLParam(r, "id")
	existing, err := h.promotions.GetPromotion(r.Context(), promotionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	identity := callerIdentity(r)
	if !canManageField(identity, existing.FieldID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	promotion, err := h.promotions.SetPromotionActive(r.Context(), identity.UserID, promotionID, req.Active)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, promotion)
}

func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.promotions.ListAds(r.Context(), r.URL.Query().Get("field_id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ads)
}
