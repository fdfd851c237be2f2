package handler

import (
	"encoding/json"
	"net/http"

	"atm-service/internal/errors"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewAppError(errors.InternalError, "An unknown error occurred")
	}

	message := appErr.Message
	if appErr.Code == errors.InternalError {
		// Never leak driver details to clients.
		message = "An unknown error occurred"
	}

	writeJSON(w, appErr.HTTPStatus(), ErrorResponse{
		Message: message,
		Code:    string(appErr.Code),
	})
}
