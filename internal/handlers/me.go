package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type UserHandler struct {
	responder
}

func NewUserHandler(logger *utils.Logger) *UserHandler {
	return &UserHandler{responder: responder{logger: logger}}
}

// Me returns the authenticated principal.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, principal(r))
}
