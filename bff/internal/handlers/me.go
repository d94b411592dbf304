package handlers

import (
	"encoding/json"
	"net/http"
)

type profileReq struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=32,alphanum"`
	FirstName string  `json:"first_name" validate:"max=100"`
	LastName  string  `json:"last_name" validate:"max=100"`
}

// Me unwraps the pod's {user} envelope; the browser gets the user
// object directly.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := h.sessionToken(w, r)
	if !ok {
		return
	}
	resp, err := h.Pod.Do(r.Context(), http.MethodGet, "/users/me", token, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if !resp.OK() {
		h.relay(w, r, resp)
		return
	}
	var body struct {
		User json.RawMessage `json:"user"`
	}
	if err := resp.Decode(&body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body.User)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.forward(w, r, http.MethodPut, "/users/me/profile", req)
}

func (h *Handler) Quota(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodGet, "/users/me/quota", nil)
}
