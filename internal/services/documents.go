package services

import (
	"context"
	"errors"
	"mime"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/storage"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, owner *models.Principal, req *models.UploadRequest) (*models.Document, error)
	GetDocument(ctx context.Context, owner *models.Principal, id string) (*models.Document, error)
	ListDocuments(ctx context.Context, owner *models.Principal) ([]models.DocumentSummary, error)
	// DownloadDocument returns the archived original file.
	DownloadDocument(ctx context.Context, owner *models.Principal, id string) (*models.Document, []byte, error)
	AnalyzeDocument(ctx context.Context, owner *models.Principal, id string) (*models.Analysis, error)
}

type documentService struct {
	repo      repository.DocumentRepository
	storage   storage.Storage
	extractor extractor.Extractor
	analyses  AnalysisService
	clock     utils.Clock
	logger    *utils.Logger
}

func NewDocumentService(repo repository.DocumentRepository, store storage.Storage, ext extractor.Extractor, analyses AnalysisService, clock utils.Clock, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:      repo,
		storage:   store,
		extractor: ext,
		analyses:  analyses,
		clock:     clock,
		logger:    logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, owner *models.Principal, req *models.UploadRequest) (*models.Document, error) {
	extractedText, err := s.extractor.Extract(ctx, req.Filename, req.File)
	if err != nil {
		s.logger.Warn("Failed to extract text", "error", err, "filename", req.Filename)
		return nil, extractionError(err)
	}

	if strings.TrimSpace(extractedText) == "" {
		s.logger.Warn("No text extracted from document", "filename", req.Filename)
		return nil, utils.NewBadRequestError("No text could be extracted from the document").
			WithDetail("The file may be empty or contain only images without OCR-readable text").
			WithCause(ErrNoContent)
	}

	docID := utils.GenerateID()
	key := storage.DocumentKey(owner.ID, docID, req.Filename)

	contentType := req.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(req.Filename)
	}

	if err := s.storage.Upload(ctx, key, req.File, contentType); err != nil {
		s.logger.Error("Failed to archive upload", "error", err, "key", key)
		return nil, utils.NewInternalError("Failed to store document").WithCause(err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.Filename
	}

	doc := &models.Document{
		ID:         docID,
		OwnerID:    owner.ID,
		Title:      title,
		Filename:   req.Filename,
		Content:    extractedText,
		Status:     models.DocumentStatusPending,
		StorageKey: key,
		UploadDate: now(s.clock),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("Failed to save document to database", "error", err, "doc_id", docID)
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned upload", "error", delErr, "key", key)
		}
		return nil, utils.NewInternalError("Failed to save document metadata").WithCause(err)
	}

	s.logger.Info("Document uploaded successfully",
		"id", docID,
		"filename", req.Filename,
		"text_length", len(extractedText))

	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, owner *models.Principal, id string) (*models.Document, error) {
	doc, err := s.repo.GetForOwner(ctx, id, owner.ID)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve document").WithCause(err)
	}
	if doc == nil {
		return nil, notFound("Document")
	}

	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, owner *models.Principal) ([]models.DocumentSummary, error) {
	docs, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		s.logger.Error("Failed to list documents", "error", err, "owner", owner.ID)
		return nil, utils.NewInternalError("Failed to retrieve documents").WithCause(err)
	}

	summaries := make([]models.DocumentSummary, 0, len(docs))
	for i := range docs {
		summaries = append(summaries, docs[i].Summary())
	}
	return summaries, nil
}

func (s *documentService) DownloadDocument(ctx context.Context, owner *models.Principal, id string) (*models.Document, []byte, error) {
	doc, err := s.GetDocument(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.Download(ctx, doc.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, notFound("Document file")
	}
	if err != nil {
		s.logger.Error("Failed to download document", "error", err, "key", doc.StorageKey)
		return nil, nil, utils.NewInternalError("Failed to retrieve document file").WithCause(err)
	}

	return doc, data, nil
}

func (s *documentService) AnalyzeDocument(ctx context.Context, owner *models.Principal, id string) (*models.Analysis, error) {
	doc, err := s.GetDocument(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	return s.analyses.AnalyzeText(ctx, owner, doc.Content)
}

func contentTypeFor(filename string) string {
	if t := mime.TypeByExtension("." + extractor.Extension(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
