package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// OrganizationRepository implements domain.OrganizationRepository using PostgreSQL.
type OrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

var _ domain.OrganizationRepository = (*OrganizationRepository)(nil)

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	query := `
		INSERT INTO organizations (name)
		VALUES ($1)
		RETURNING id, name, created_at`

	var created domain.Organization
	if err := r.pool.QueryRow(ctx, query, org.Name).Scan(&created.ID, &created.Name, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	query := `SELECT id, name, created_at FROM organizations WHERE id = $1`

	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}
