package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// OfficerRepository implements domain.OfficerRepository using PostgreSQL.
type OfficerRepository struct {
	pool *pgxpool.Pool
}

func NewOfficerRepository(pool *pgxpool.Pool) *OfficerRepository {
	return &OfficerRepository{pool: pool}
}

var _ domain.OfficerRepository = (*OfficerRepository)(nil)

const officerColumns = `id, organization_id, branch_id, username, api_key, created_at`

func scanOfficer(row rowScanner) (*domain.LoanOfficer, error) {
	var officer domain.LoanOfficer
	err := row.Scan(&officer.ID, &officer.OrganizationID, &officer.BranchID,
		&officer.Username, &officer.APIKey, &officer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

func (r *OfficerRepository) Create(ctx context.Context, officer *domain.LoanOfficer) (*domain.LoanOfficer, error) {
	query := `
		INSERT INTO loan_officers (organization_id, branch_id, username, api_key)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + officerColumns

	return scanOfficer(r.pool.QueryRow(ctx, query,
		officer.OrganizationID, officer.BranchID, officer.Username, officer.APIKey))
}

func (r *OfficerRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.LoanOfficer, error) {
	query := `SELECT ` + officerColumns + ` FROM loan_officers
		WHERE organization_id = $1 AND id = $2`

	officer, err := scanOfficer(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfficerNotFound
		}
		return nil, err
	}
	return officer, nil
}

func (r *OfficerRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.LoanOfficer, error) {
	query := `SELECT ` + officerColumns + ` FROM loan_officers WHERE api_key = $1`

	officer, err := scanOfficer(r.pool.QueryRow(ctx, query, apiKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfficerNotFound
		}
		return nil, err
	}
	return officer, nil
}

func (r *OfficerRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*domain.LoanOfficer, error) {
	query := `SELECT ` + officerColumns + ` FROM loan_officers
		WHERE organization_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var officers []*domain.LoanOfficer
	for rows.Next() {
		officer, err := scanOfficer(rows)
		if err != nil {
			return nil, err
		}
		officers = append(officers, officer)
	}
	return officers, rows.Err()
}
