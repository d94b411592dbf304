package controllers

import (
	"net/http"

	"panda-gate/pod/app/middleware"
	"panda-gate/pod/app/services"
)

type NotificationController struct{ Notifications *services.NotificationService }

func NewNotificationController(n *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: n}
}

func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	list, err := c.Notifications.ListForUser(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": list})
}

func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if err := c.Notifications.MarkRead(r.PathValue("id"), claims.UserID, claims.Role); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if err := c.Notifications.Delete(r.PathValue("id"), claims.UserID, claims.Role); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
