package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"panda-gate/apperrors"
	"panda-gate/bff/internal/podclient"
	"panda-gate/session"
)

// Handler holds everything the BFF's API routes share. Every route
// that needs pod data follows the same contract: no cookie means an
// immediate 401 with no upstream call; pod errors are relayed
// verbatim; transport failures become a 500 upstream envelope.
type Handler struct {
	Pod      *podclient.Client
	Validate *validator.Validate
	Secure   bool
}

func New(pod *podclient.Client, secure bool) *Handler {
	return &Handler{
		Pod:      pod,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Secure:   secure,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("encode response")
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, apperrors.ToEnvelope(err))
}

// decode parses and validates a request body; the pod only ever sees
// bodies that passed here.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("malformed JSON body")
	}
	if err := h.Validate.Struct(v); err != nil {
		details := map[string]any{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.ValidationDetails("invalid request body", details)
	}
	return nil
}

// sessionToken returns the raw cookie token, or answers 401 itself.
func (h *Handler) sessionToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := session.FromRequest(r)
	if token == "" {
		writeError(w, apperrors.Unauthenticated("no session"))
		return "", false
	}
	return token, true
}

// relay passes a pod response through, dropping the session cookie
// first when the pod rejected the bearer: a dead cookie must not be
// replayed forever.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, resp *podclient.Response) {
	if resp.Status == http.StatusUnauthorized && session.FromRequest(r) != "" {
		session.ClearCookie(w, h.Secure)
	}
	podclient.Relay(w, resp)
}

// forward is the common shape of an authenticated pass-through route.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, method, path string, body any) {
	token, ok := h.sessionToken(w, r)
	if !ok {
		return
	}
	resp, err := h.Pod.Do(r.Context(), method, path, token, body)
	if err != nil {
		writeError(w, err)
		return
	}
	h.relay(w, r, resp)
}
