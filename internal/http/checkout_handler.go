package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/storefront/internal/address"
	"github.com/andreasstove999/storefront/internal/checkout"
	"github.com/andreasstove999/storefront/internal/kv"
	"github.com/andreasstove999/storefront/internal/session"
)

type CheckoutHandler struct {
	sessions *session.Manager
	book     *address.Book
}

func NewCheckoutHandler(sessions *session.Manager, book *address.Book) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, book: book}
}

// machine fetches the open checkout for the session, writing a 409 when
// the checkout UI has not been opened.
func (h *CheckoutHandler) machine(w http.ResponseWriter, r *http.Request) (*checkout.Machine, bool) {
	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	m, ok := s.Checkout()
	if !ok {
		writeError(w, http.StatusConflict, "checkout is not open")
		return nil, false
	}
	return m, true
}

type checkoutState struct {
	Stage       checkout.Stage    `json:"stage"`
	Form        checkout.Form     `json:"form"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Coupon      bool              `json:"couponApplied"`
	Notices     []checkout.Notice `json:"notices"`
}

func stateOf(m *checkout.Machine) checkoutState {
	return checkoutState{
		Stage:       m.Stage(),
		Form:        m.Form(),
		FieldErrors: m.FieldErrors(),
		Coupon:      m.CouponApplied(),
		Notices:     m.Notices(),
	}
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	m := h.sessions.Open(chi.URLParam(r, "sessionId"))
	writeJSON(w, http.StatusOK, stateOf(m))
}

func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.sessions.Get(chi.URLParam(r, "sessionId")).CloseCheckout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(m))
}

// PatchForm applies field edits. Editing a field clears its validation
// error.
func (h *CheckoutHandler) PatchForm(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	for field, value := range fields {
		if err := m.SetField(field, value); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, stateOf(m))
}

type couponRequest struct {
	Code string `json:"code"`
}

func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	m.ApplyCoupon(req.Code)
	writeJSON(w, http.StatusOK, stateOf(m))
}

func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m.Totals())
}

// Submit validates the form; on success the machine moves to Confirming,
// on validation failure it stays in Editing and the field errors come back
// with a 422.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	if err := m.Submit(); err != nil {
		if errors.Is(err, checkout.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, stateOf(m))
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateOf(m))
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	if err := m.Cancel(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateOf(m))
}

// Confirm runs the order submission. Failure is recoverable: the machine
// is back in Editing with the form retained, and the response carries the
// Failed stage plus the user-facing message.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	payload, err := m.Confirm(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrIllegalTransition) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"stage":   checkout.StageFailed,
			"error":   "order submission failed, please try again",
			"notices": m.Notices(),
		})
		return
	}

	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	s.CloseCheckout()

	writeJSON(w, http.StatusOK, map[string]any{
		"stage": checkout.StageCompleted,
		"order": payload,
	})
}

func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	saved, err := m.SaveCurrentAddress(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save address")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address": saved,
		"notices": m.Notices(),
	})
}

func (h *CheckoutHandler) UseAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "addressId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	m, ok := h.machine(w, r)
	if !ok {
		return
	}

	a, err := h.book.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load address")
		return
	}

	m.UseSavedAddress(a)
	writeJSON(w, http.StatusOK, stateOf(m))
}
