// SocialPulse - Real-Time Social Platform Analytics
// Copyright 2026 M. Bellan (mbellan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mbellan/socialpulse

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mbellan/socialpulse/internal/logging"
)

// response is the envelope for every API reply.
type response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	writeResponse(w, status, &response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeResponse(w, status, &response{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	})
}

func writeResponse(w http.ResponseWriter, status int, resp *response) {
	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(resp)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}
