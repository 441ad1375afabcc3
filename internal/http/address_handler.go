package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/storefront/internal/address"
)

type AddressHandler struct {
	book *address.Book
}

func NewAddressHandler(book *address.Book) *AddressHandler {
	return &AddressHandler{book: book}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.book.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load addresses")
		return
	}
	if list == nil {
		list = []address.SavedAddress{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AddressHandler) Add(w http.ResponseWriter, r *http.Request) {
	var a address.SavedAddress
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	saved, err := h.book.Add(r.Context(), a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save address")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *AddressHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "addressId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	if err := h.book.Remove(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete address")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
