package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	views, err := h.fieldViews(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handler) GetField(w http.ResponseWriter, r *http.Request) {
	field, err := h.fields.GetField(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newFieldView(field))
}
