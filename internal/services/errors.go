package services

import (
	"errors"
	"fmt"

	"github.com/BerylCAtieno/contract-analysis-api/internal/analyzer"
	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

var (
	ErrNoContent         = errors.New("no content")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
)

func notFound(what string) *utils.AppError {
	return utils.NewNotFoundError(what + " not found").WithCause(ErrNotFound)
}

// extractionError maps dispatcher failures onto client errors.
func extractionError(err error) *utils.AppError {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return utils.NewBadRequestError(err.Error()).
			WithDetail("Supported formats: pdf, doc, docx, png, jpg, jpeg, txt").
			WithCause(err)
	case errors.Is(err, extractor.ErrExtractionFailure):
		return utils.NewBadRequestError("Failed to extract text from document").
			WithDetail(err.Error()).
			WithCause(err)
	default:
		return utils.NewInternalError("Failed to process document").WithCause(err)
	}
}

func completionError(err error) *utils.AppError {
	var ce *analyzer.CompletionError
	if !errors.As(err, &ce) {
		ce = analyzer.Classify(err)
	}
	return utils.NewInternalError(ce.Message()).
		WithDetail("Failed to analyze text due to API error").
		WithCause(ce)
}

func missingFields(fields []string) *utils.AppError {
	return utils.NewBadRequestError("Missing required fields").
		WithDetail(fmt.Sprintf("Required: %v", fields)).
		WithCause(ErrMissingFields)
}
