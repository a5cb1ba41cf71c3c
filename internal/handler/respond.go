package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"machineshop/internal/service"
)

// maxBodyBytes allows base64 machine images inline.
const maxBodyBytes = 50 << 20

type errorResponse struct {
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Available *int   `json:"available,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &service.ValidationError{Field: "body", Message: "invalid json"}
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *service.ValidationError
		stock      *service.InsufficientStockError
		stage      *service.StageError
	)

	switch {
	// stock is already reserved; whatever the cause, this is a server fault
	case errors.As(err, &stage):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: validation.Message, Field: validation.Field})
	case errors.As(err, &stock):
		available := stock.Available
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: stock.Error(), Available: &available})
	case errors.Is(err, service.ErrMachineNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Machine not found"})
	case errors.Is(err, service.ErrClientNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Client not found"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Not found"})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Message: "Email already registered"})
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Message: "Conflict"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Invalid email or password"})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}
