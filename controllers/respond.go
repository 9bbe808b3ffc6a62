package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-storefront/checkout"
	"go-storefront/ledger"
	"go-storefront/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	if _, ok := models.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrInvalidTransition), errors.Is(err, checkout.ErrCheckoutInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	if ve, ok := models.AsValidationError(err); ok {
		body.Error = ve.Message
		body.Fields = ve.Fields
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		body.Error = "Internal server error"
	}
	writeJSON(w, status, body)
}

// decodeJSON reads the request body into v, reporting malformed input as a
// validation error
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.NewValidationError("Invalid input")
	}
	return nil
}

func intVar(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, models.NewValidationError("Invalid "+name, name)
	}
	return id, nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
