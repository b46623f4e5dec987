package repository

import (
	"context"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetForOwner(ctx context.Context, id, ownerID string) (*models.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := r.db.Rebind(`
		INSERT INTO documents (id, owner_id, title, filename, content, status, storage_key, upload_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		doc.Filename,
		doc.Content,
		doc.Status,
		doc.StorageKey,
		doc.UploadDate,
	)

	return err
}

// GetForOwner returns nil when the document does not exist or belongs to someone else.
func (r *documentRepository) GetForOwner(ctx context.Context, id, ownerID string) (*models.Document, error) {
	var doc models.Document

	query := r.db.Rebind(`
		SELECT id, owner_id, title, filename, content, status, storage_key, upload_date
		FROM documents
		WHERE id = ? AND owner_id = ?
	`)

	err := r.db.GetContext(ctx, &doc, query, id, ownerID)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *documentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs := []models.Document{}

	query := r.db.Rebind(`
		SELECT id, owner_id, title, filename, content, status, storage_key, upload_date
		FROM documents
		WHERE owner_id = ?
		ORDER BY upload_date DESC, id DESC
	`)

	if err := r.db.SelectContext(ctx, &docs, query, ownerID); err != nil {
		return nil, err
	}

	return docs, nil
}
