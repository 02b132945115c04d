package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: api.ErrorBody{
		Code:    httpCode,
		Message: message,
	}})
}

// decodeBody closes the body and reports malformed JSON as false.
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the request body reader", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		logRH.Warn("Bad request body", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
