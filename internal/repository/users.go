package repository

import (
	"context"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserRepository reads the account table owned by the user-management layer.
type UserRepository interface {
	Create(ctx context.Context, p *models.Principal) error
	GetByID(ctx context.Context, id string) (*models.Principal, error)
	ListStaffWithEmail(ctx context.Context) ([]models.Principal, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, p *models.Principal) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, email, username, is_staff, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Email, p.Username, p.IsStaff, p.IsActive, time.Now().UTC())
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	var p models.Principal

	query := r.db.Rebind(`SELECT id, email, username, is_staff, is_active FROM users WHERE id = ?`)

	err := r.db.GetContext(ctx, &p, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) ListStaffWithEmail(ctx context.Context) ([]models.Principal, error) {
	staff := []models.Principal{}

	query := r.db.Rebind(`
		SELECT id, email, username, is_staff, is_active
		FROM users
		WHERE is_staff = ? AND is_active = ? AND email <> ''
		ORDER BY username
	`)

	if err := r.db.SelectContext(ctx, &staff, query, true, true); err != nil {
		return nil, err
	}
	return staff, nil
}
