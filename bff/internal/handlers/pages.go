package handlers

import (
	"encoding/json"
	"net/http"
)

// Page endpoints return the JSON the rendering layer hydrates from.
// The access classifier has already decided whether the caller may be
// here; these handlers only fetch data.

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "home"})
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"page":     "login",
		"redirect": r.URL.Query().Get("redirect"),
	})
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "register"})
}

// Dashboard composes the signed-in user's profile and quota row into
// one payload.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token, ok := h.sessionToken(w, r)
	if !ok {
		return
	}
	me, err := h.Pod.Do(r.Context(), http.MethodGet, "/users/me", token, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if !me.OK() {
		h.relay(w, r, me)
		return
	}
	quota, err := h.Pod.Do(r.Context(), http.MethodGet, "/users/me/quota", token, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if !quota.OK() {
		h.relay(w, r, quota)
		return
	}
	var user struct {
		User json.RawMessage `json:"user"`
	}
	if err := me.Decode(&user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "dashboard",
		"user":  user.User,
		"quota": json.RawMessage(quota.Body),
		"error": r.URL.Query().Get("error"),
	})
}

func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, http.MethodGet, "/admin/users", nil)
}
