package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type roleChangeReq struct {
	Role string `json:"role" validate:"required"`
}

type notifyReq struct {
	Title string `json:"title" validate:"required,max=191"`
	Body  string `json:"body" validate:"max=4000"`
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodGet, "/admin/users", nil)
}

func (h *Handler) AdminChangeRole(w http.ResponseWriter, r *http.Request) {
	var req roleChangeReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.forward(w, r, http.MethodPut, "/admin/users/"+chi.URLParam(r, "id")+"/role", req)
}

func (h *Handler) AdminNotify(w http.ResponseWriter, r *http.Request) {
	var req notifyReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.forward(w, r, http.MethodPost, "/admin/users/"+chi.URLParam(r, "id")+"/notifications", req)
}
