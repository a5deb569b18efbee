package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// BranchRepository implements domain.BranchRepository using PostgreSQL.
type BranchRepository struct {
	pool *pgxpool.Pool
}

func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

var _ domain.BranchRepository = (*BranchRepository)(nil)

func (r *BranchRepository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	query := `
		INSERT INTO branches (organization_id, name)
		VALUES ($1, $2)
		RETURNING id, organization_id, name, created_at`

	var created domain.Branch
	err := r.pool.QueryRow(ctx, query, branch.OrganizationID, branch.Name).
		Scan(&created.ID, &created.OrganizationID, &created.Name, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *BranchRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Branch, error) {
	query := `SELECT id, organization_id, name, created_at FROM branches
		WHERE organization_id = $1 AND id = $2`

	var branch domain.Branch
	err := r.pool.QueryRow(ctx, query, organizationID, id).
		Scan(&branch.ID, &branch.OrganizationID, &branch.Name, &branch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return &branch, nil
}

func (r *BranchRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*domain.Branch, error) {
	query := `SELECT id, organization_id, name, created_at FROM branches
		WHERE organization_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(&branch.ID, &branch.OrganizationID, &branch.Name, &branch.CreatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, &branch)
	}
	return branches, rows.Err()
}
