package controllers

import (
	"encoding/json"
	"net/http"

	"panda-gate/apperrors"
	"panda-gate/pod/app/dto"
	"panda-gate/pod/app/services"
	"panda-gate/roles"
	"panda-gate/session"
)

type AuthController struct {
	Users  *services.UserService
	Signer *session.Signer
}

func NewAuthController(users *services.UserService, signer *session.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.Validation("email and password are required"))
		return
	}
	u, err := c.Users.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Email, roles.Role(u.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.AuthResponse{User: u, AccessToken: token})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.Validation("email and password are required"))
		return
	}
	u, err := c.Users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Email, roles.Role(u.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{User: u, AccessToken: token})
}

// BootstrapStatus lets the front tier decide whether to offer the
// first-owner setup flow.
func (c *AuthController) BootstrapStatus(w http.ResponseWriter, r *http.Request) {
	allowed, err := c.Users.BootstrapAllowed()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.BootstrapStatus{Allowed: allowed})
}

func (c *AuthController) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req dto.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.Validation("email and password are required"))
		return
	}
	u, err := c.Users.Bootstrap(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Email, roles.Role(u.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.AuthResponse{User: u, AccessToken: token})
}
