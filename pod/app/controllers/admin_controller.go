package controllers

import (
	"encoding/json"
	"net/http"

	"panda-gate/apperrors"
	"panda-gate/pod/app/dto"
	"panda-gate/pod/app/middleware"
	"panda-gate/pod/app/services"
	"panda-gate/roles"
)

type AdminController struct {
	Users         *services.UserService
	Notifications *services.NotificationService
}

func NewAdminController(users *services.UserService, notifications *services.NotificationService) *AdminController {
	return &AdminController{Users: users, Notifications: notifications}
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (c *AdminController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	targetID := r.PathValue("id")
	var req dto.RoleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Role == "" {
		writeError(w, apperrors.Validation("role is required"))
		return
	}
	u, err := c.Users.ChangeRole(r.Context(), claims.UserID, targetID, roles.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{User: u})
}

type notifyReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notify posts a notification to a user's inbox. Delivery beyond the
// inbox (email, webhooks) is handled elsewhere.
func (c *AdminController) Notify(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	var req notifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Title == "" {
		writeError(w, apperrors.Validation("title is required"))
		return
	}
	if _, err := c.Users.Get(targetID); err != nil {
		writeError(w, err)
		return
	}
	n, err := c.Notifications.Create(targetID, req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"notification": n})
}
