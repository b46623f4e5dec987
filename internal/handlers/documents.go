package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
	"github.com/gorilla/mux"
)

// formOverhead leaves room for multipart headers and the other form fields.
const formOverhead = 1 << 20

type DocumentHandler struct {
	responder
	service     services.DocumentService
	maxFileSize int64
}

func NewDocumentHandler(service services.DocumentService, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		responder:   responder{logger: logger},
		service:     service,
		maxFileSize: maxFileSize,
	}
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, h.maxFileSize)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("File upload attempt",
		"filename", upload.Filename,
		"content_type", upload.ContentType,
		"size", len(upload.File))

	doc, err := h.service.UploadDocument(r.Context(), principal(r), upload)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context(), principal(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetDocument(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	doc, data, err := h.service.DownloadDocument(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(doc.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.AnalyzeDocument(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analysisResponse(analysis))
}

// readUpload parses the multipart "file" field, enforcing the size limit.
func readUpload(w http.ResponseWriter, r *http.Request, maxFileSize int64) (*models.UploadRequest, error) {
	tooLarge := utils.NewBadRequestError("File size exceeds " + sizeLimit(maxFileSize) + " limit")

	if r.ContentLength > maxFileSize+formOverhead {
		return nil, tooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+formOverhead)

	if err := r.ParseMultipartForm(maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return nil, tooLarge
		}
		return nil, utils.NewBadRequestError("Invalid form data")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, utils.NewBadRequestError("No file provided")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to read file").WithCause(err)
	}
	if int64(len(data)) > maxFileSize {
		return nil, tooLarge
	}
	if len(data) == 0 {
		return nil, utils.NewBadRequestError("Uploaded file is empty")
	}

	return &models.UploadRequest{
		File:        data,
		Filename:    header.Filename,
		Title:       r.FormValue("title"),
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func sizeLimit(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
