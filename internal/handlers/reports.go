package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
	"github.com/gorilla/mux"
)

type ReportHandler struct {
	responder
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger *utils.Logger) *ReportHandler {
	return &ReportHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	report, err := h.service.CreateReport(r.Context(), principal(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, &models.ReportCreatedResponse{
		ID:        report.ID,
		Title:     report.Title,
		Type:      report.Type,
		Priority:  report.Priority,
		Status:    report.Status,
		CreatedAt: report.CreatedAt,
	})
}

func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context(), principal(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateReportRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	report, err := h.service.UpdateReport(r.Context(), principal(r), mux.Vars(r)["id"], &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}
