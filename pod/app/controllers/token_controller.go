package controllers

import (
	"encoding/json"
	"net/http"

	"panda-gate/apperrors"
	"panda-gate/pod/app/dto"
	"panda-gate/pod/app/middleware"
	"panda-gate/pod/app/services"
)

type TokenController struct{ Tokens *services.ApiTokenService }

func NewTokenController(tokens *services.ApiTokenService) *TokenController {
	return &TokenController{Tokens: tokens}
}

func (c *TokenController) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	list, err := c.Tokens.ListForUser(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": list})
}

func (c *TokenController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	var req dto.TokenCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("malformed JSON body"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.Validation("name is required"))
		return
	}
	t, plaintext, err := c.Tokens.Create(claims.UserID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	// plaintext is shown once; only the hash is stored
	writeJSON(w, http.StatusCreated, map[string]any{"api_token": t, "token": plaintext})
}

func (c *TokenController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if err := c.Tokens.Delete(r.PathValue("id"), claims.UserID, claims.Role); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
