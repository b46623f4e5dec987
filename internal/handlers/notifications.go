package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	responder
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger *utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	n, err := h.service.CreateNotification(r.Context(), principal(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.ListNotifications(r.Context(), principal(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkRead(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, n)
}
