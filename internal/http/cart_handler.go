package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/storefront/internal/cart"
	"github.com/andreasstove999/storefront/internal/pricing"
	"github.com/andreasstove999/storefront/internal/session"
)

type CartHandler struct {
	sessions *session.Manager
}

func NewCartHandler(sessions *session.Manager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

type cartResponse struct {
	Items  cart.Snapshot  `json:"items"`
	Totals pricing.Totals `json:"totals"`
}

func (h *CartHandler) cartState(s *session.Session) cartResponse {
	applied := false
	if m, ok := s.Checkout(); ok {
		applied = m.CouponApplied()
	}

	snap := s.Cart.Snapshot()
	if snap == nil {
		snap = cart.Snapshot{}
	}
	return cartResponse{
		Items:  snap,
		Totals: pricing.ComputeTotals(snap, applied),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	writeJSON(w, http.StatusOK, h.cartState(s))
}

type addItemRequest struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ID == "" || req.Price < 0 {
		writeError(w, http.StatusBadRequest, "missing product id or negative price")
		return
	}

	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	s.Cart.Add(cart.Item{
		ID:    req.ID,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	}, req.Quantity)

	writeJSON(w, http.StatusOK, h.cartState(s))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	s.Cart.SetQuantity(chi.URLParam(r, "productId"), req.Quantity)

	writeJSON(w, http.StatusOK, h.cartState(s))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	s.Cart.Remove(chi.URLParam(r, "productId"))

	writeJSON(w, http.StatusOK, h.cartState(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
