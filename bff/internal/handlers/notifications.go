package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodGet, "/notifications", nil)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodPost, "/notifications/"+chi.URLParam(r, "id")+"/read", nil)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodDelete, "/notifications/"+chi.URLParam(r, "id"), nil)
}
