package handlers

import (
	"encoding/json"
	"net/http"

	"panda-gate/bff/internal/podclient"
	"panda-gate/session"
)

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type bootstrapReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12"`
}

// authRelay handles the shared tail of login/register/bootstrap: on
// success the pod's access_token moves into the session cookie and the
// caller sees only the user.
func (h *Handler) authRelay(w http.ResponseWriter, resp *podclient.Response) {
	if !resp.OK() {
		podclient.Relay(w, resp)
		return
	}
	var body struct {
		User        json.RawMessage `json:"user"`
		AccessToken string          `json:"access_token"`
	}
	if err := resp.Decode(&body); err != nil {
		writeError(w, err)
		return
	}
	session.SetCookie(w, body.AccessToken, h.Secure)
	writeJSON(w, resp.Status, map[string]any{"user": body.User})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Pod.Do(r.Context(), http.MethodPost, "/auth/login", "", req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.authRelay(w, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Pod.Do(r.Context(), http.MethodPost, "/auth/register", "", req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.authRelay(w, resp)
}

// Logout is purely client-side state: the token stays valid until
// expiry, but the browser loses it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, h.Secure)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) BootstrapStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Pod.Do(r.Context(), http.MethodGet, "/auth/bootstrap", "", nil)
	if err != nil {
		writeError(w, err)
		return
	}
	podclient.Relay(w, resp)
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req bootstrapReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Pod.Do(r.Context(), http.MethodPost, "/auth/bootstrap", "", req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.authRelay(w, resp)
}
