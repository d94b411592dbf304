package controllers

import (
	"encoding/json"
	"net/http"

	"panda-gate/apperrors"
	"panda-gate/pod/global"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			global.Logger.Error().Err(err).Msg("encode response")
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		global.Logger.Error().Err(err).Msg("internal error")
	}
	writeJSON(w, status, apperrors.ToEnvelope(err))
}
