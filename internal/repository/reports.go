package repository

import (
	"context"
	"database/sql"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	// List returns reports newest-first; a nil ownerID lists every report.
	List(ctx context.Context, ownerID *string) ([]models.Report, error)
	// Update writes status, priority and updated_at of a single row.
	Update(ctx context.Context, report *models.Report) error
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

type reportRow struct {
	models.Report
	OwnerUsername sql.NullString `db:"owner_username"`
	OwnerEmail    sql.NullString `db:"owner_email"`
}

func (row *reportRow) toModel() models.Report {
	report := row.Report
	if report.OwnerID != nil && row.OwnerEmail.Valid {
		report.Owner = &models.PrincipalRef{
			ID:       *report.OwnerID,
			Username: row.OwnerUsername.String,
			Email:    row.OwnerEmail.String,
		}
	}
	return report
}

const reportSelect = `
	SELECT r.id, r.title, r.description, r.type, r.steps, r.owner_id, r.status, r.priority,
	       r.created_at, r.updated_at, u.username AS owner_username, u.email AS owner_email
	FROM reports r
	LEFT JOIN users u ON u.id = r.owner_id
`

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	query := r.db.Rebind(`
		INSERT INTO reports (id, title, description, type, steps, owner_id, status, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.Title,
		report.Description,
		report.Type,
		report.Steps,
		report.OwnerID,
		report.Status,
		report.Priority,
		report.CreatedAt,
		report.UpdatedAt,
	)

	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var row reportRow

	err := r.db.GetContext(ctx, &row, r.db.Rebind(reportSelect+` WHERE r.id = ?`), id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report := row.toModel()
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, ownerID *string) ([]models.Report, error) {
	var (
		rows []reportRow
		err  error
	)

	if ownerID == nil {
		err = r.db.SelectContext(ctx, &rows, reportSelect+` ORDER BY r.created_at DESC, r.id DESC`)
	} else {
		err = r.db.SelectContext(ctx, &rows,
			r.db.Rebind(reportSelect+` WHERE r.owner_id = ? ORDER BY r.created_at DESC, r.id DESC`), *ownerID)
	}
	if err != nil {
		return nil, err
	}

	reports := make([]models.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, rows[i].toModel())
	}
	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	query := r.db.Rebind(`
		UPDATE reports
		SET status = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query, report.Status, report.Priority, report.UpdatedAt, report.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
