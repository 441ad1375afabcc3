package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/storefront/internal/review"
)

type ReviewHandler struct {
	reviews *review.Store
}

func NewReviewHandler(reviews *review.Store) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviews.List(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	if list == nil {
		list = []review.Review{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	var rv review.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	rv.ProductID = chi.URLParam(r, "productId")

	saved, err := h.reviews.Add(r.Context(), rv)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save review")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rv review.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	rv.ProductID = chi.URLParam(r, "productId")
	rv.ID = chi.URLParam(r, "reviewId")

	if err := h.reviews.Update(r.Context(), rv); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.reviews.Delete(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "reviewId"))
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
