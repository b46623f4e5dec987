package repository

import (
	"context"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// AnalysisRepository is append-only: there is no update or delete.
type AnalysisRepository interface {
	Create(ctx context.Context, a *models.Analysis) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	query := r.db.Rebind(`
		INSERT INTO analyses (id, owner_id, input_text, result_text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query, a.ID, a.OwnerID, a.InputText, a.ResultText, a.CreatedAt)
	return err
}

func (r *analysisRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Analysis, error) {
	analyses := []models.Analysis{}

	query := r.db.Rebind(`
		SELECT id, owner_id, input_text, result_text, created_at
		FROM analyses
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`)

	if err := r.db.SelectContext(ctx, &analyses, query, ownerID); err != nil {
		return nil, err
	}

	return analyses, nil
}
