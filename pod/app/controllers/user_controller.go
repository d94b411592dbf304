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

type UserController struct{ Users *services.UserService }

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	u, err := c.Users.Get(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{User: u})
}

func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	u, err := c.Users.UpdateProfile(claims.UserID, claims.Role, claims.UserID, req.Username, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{User: u})
}

// Quota reports the limits for the caller's current stored role.
// Display only; nothing enforces these at resource creation.
func (c *UserController) Quota(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	u, err := c.Users.Get(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := roles.QuotaFor(roles.Role(u.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
