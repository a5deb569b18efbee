package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// BorrowerRepository implements domain.BorrowerRepository using PostgreSQL.
type BorrowerRepository struct {
	pool *pgxpool.Pool
}

func NewBorrowerRepository(pool *pgxpool.Pool) *BorrowerRepository {
	return &BorrowerRepository{pool: pool}
}

var _ domain.BorrowerRepository = (*BorrowerRepository)(nil)

const borrowerColumns = `id, organization_id, branch_id, full_name, business,
	unique_id, mobile, email, status, created_at`

func scanBorrower(row rowScanner) (*domain.Borrower, error) {
	var borrower domain.Borrower
	err := row.Scan(&borrower.ID, &borrower.OrganizationID, &borrower.BranchID,
		&borrower.FullName, &borrower.Business, &borrower.UniqueID,
		&borrower.Mobile, &borrower.Email, &borrower.Status, &borrower.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

func (r *BorrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) (*domain.Borrower, error) {
	query := `
		INSERT INTO borrowers (organization_id, branch_id, full_name, business, unique_id, mobile, email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + borrowerColumns

	created, err := scanBorrower(r.pool.QueryRow(ctx, query,
		borrower.OrganizationID, borrower.BranchID, borrower.FullName, borrower.Business,
		borrower.UniqueID, borrower.Mobile, borrower.Email, string(borrower.Status)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrBorrowerUniqueIDExists
		}
		return nil, err
	}
	return created, nil
}

func (r *BorrowerRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
		WHERE organization_id = $1 AND id = $2`

	borrower, err := scanBorrower(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBorrowerNotFound
		}
		return nil, err
	}
	return borrower, nil
}

func (r *BorrowerRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*domain.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers
		WHERE organization_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrowers []*domain.Borrower
	for rows.Next() {
		borrower, err := scanBorrower(rows)
		if err != nil {
			return nil, err
		}
		borrowers = append(borrowers, borrower)
	}
	return borrowers, rows.Err()
}

func (r *BorrowerRepository) CountByOrganization(ctx context.Context, organizationID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM borrowers WHERE organization_id = $1`
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BorrowerRepository) Update(ctx context.Context, borrower *domain.Borrower) (*domain.Borrower, error) {
	query := `
		UPDATE borrowers SET branch_id = $3, full_name = $4, business = $5,
			mobile = $6, email = $7, status = $8
		WHERE organization_id = $1 AND id = $2
		RETURNING ` + borrowerColumns

	updated, err := scanBorrower(r.pool.QueryRow(ctx, query,
		borrower.OrganizationID, borrower.ID, borrower.BranchID, borrower.FullName,
		borrower.Business, borrower.Mobile, borrower.Email, string(borrower.Status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBorrowerNotFound
		}
		return nil, err
	}
	return updated, nil
}
