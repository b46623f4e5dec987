package services

import (
	"context"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/analyzer"
	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type AnalysisService interface {
	// AnalyzeText runs one completion round trip and persists its result.
	// owner may be nil for anonymous callers.
	AnalyzeText(ctx context.Context, owner *models.Principal, text string) (*models.Analysis, error)
	AnalyzeFile(ctx context.Context, owner *models.Principal, filename string, data []byte) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, owner *models.Principal) ([]models.Analysis, error)
}

type analysisService struct {
	repo      repository.AnalysisRepository
	extractor extractor.Extractor
	analyzer  analyzer.Analyzer
	clock     utils.Clock
	logger    *utils.Logger
}

func NewAnalysisService(repo repository.AnalysisRepository, ext extractor.Extractor, a analyzer.Analyzer, clock utils.Clock, logger *utils.Logger) AnalysisService {
	return &analysisService{
		repo:      repo,
		extractor: ext,
		analyzer:  a,
		clock:     clock,
		logger:    logger,
	}
}

func (s *analysisService) AnalyzeText(ctx context.Context, owner *models.Principal, text string) (*models.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewBadRequestError("No text provided for analysis").
			WithDetail("Please provide text to analyze").
			WithCause(ErrNoContent)
	}

	s.logger.Info("Starting analysis", "text_length", len(text))

	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, completionError(err)
	}

	analysis := &models.Analysis{
		ID:         utils.GenerateID(),
		InputText:  text,
		ResultText: result,
		CreatedAt:  now(s.clock),
	}
	if owner != nil {
		analysis.OwnerID = &owner.ID
	}

	if err := s.repo.Create(ctx, analysis); err != nil {
		s.logger.Error("Failed to save analysis", "error", err, "id", analysis.ID)
		return nil, utils.NewInternalError("Failed to save analysis results").WithCause(err)
	}

	s.logger.Info("Analysis completed",
		"id", analysis.ID,
		"result_length", len(result))

	return analysis, nil
}

func (s *analysisService) AnalyzeFile(ctx context.Context, owner *models.Principal, filename string, data []byte) (*models.Analysis, error) {
	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		s.logger.Warn("Failed to extract text", "error", err, "filename", filename)
		return nil, extractionError(err)
	}

	return s.AnalyzeText(ctx, owner, text)
}

func (s *analysisService) ListAnalyses(ctx context.Context, owner *models.Principal) ([]models.Analysis, error) {
	analyses, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		s.logger.Error("Failed to list analyses", "error", err, "owner", owner.ID)
		return nil, utils.NewInternalError("Failed to retrieve analyses").WithCause(err)
	}
	return analyses, nil
}
