package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

const analysisCompleted = "Analysis completed successfully"

type AnalysisHandler struct {
	responder
	service     services.AnalysisService
	maxFileSize int64
}

func NewAnalysisHandler(service services.AnalysisService, maxFileSize int64, logger *utils.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		responder:   responder{logger: logger},
		service:     service,
		maxFileSize: maxFileSize,
	}
}

func analysisResponse(a *models.Analysis) *models.AnalysisResponse {
	return &models.AnalysisResponse{
		ID:      a.ID,
		Result:  a.ResultText,
		Message: analysisCompleted,
	}
}

func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeTextRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.service.AnalyzeText(r.Context(), principal(r), req.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analysisResponse(analysis))
}

// AnalyzeFile extracts an uploaded file and analyzes it without storing a Document.
func (h *AnalysisHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, h.maxFileSize)
	if err != nil {
		h.respondError(w, err)
		return
	}

	analysis, err := h.service.AnalyzeFile(r.Context(), principal(r), upload.Filename, upload.File)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analysisResponse(analysis))
}

func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.service.ListAnalyses(r.Context(), principal(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analyses)
}
