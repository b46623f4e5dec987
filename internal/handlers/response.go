package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/middleware"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// responder is embedded by every handler for uniform JSON output.
type responder struct {
	logger *utils.Logger
}

func (h *responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *responder) respondError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "Internal server error"}
	status := http.StatusInternalServerError

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		resp.Error = appErr.Message
		resp.Message = appErr.Detail
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err)
	} else {
		h.logger.Warn("Request rejected", "status", status, "error", resp.Error)
	}

	h.respondJSON(w, status, resp)
}

func (h *responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}
	return true
}

// principal returns the caller set by the auth middleware. Routes that call it
// are always behind Authenticator.Required.
func principal(r *http.Request) *models.Principal {
	return middleware.PrincipalFrom(r.Context())
}
