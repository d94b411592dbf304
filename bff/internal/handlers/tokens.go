package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type tokenCreateReq struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *Handler) ListTokens(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodGet, "/tokens", nil)
}

func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenCreateReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.forward(w, r, http.MethodPost, "/tokens", req)
}

func (h *Handler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodDelete, "/tokens/"+chi.URLParam(r, "id"), nil)
}
