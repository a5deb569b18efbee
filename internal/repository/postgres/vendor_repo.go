package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// VendorRepository implements domain.VendorRepository using PostgreSQL.
type VendorRepository struct {
	pool *pgxpool.Pool
}

func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

var _ domain.VendorRepository = (*VendorRepository)(nil)

const vendorColumns = `id, organization_id, name, phone, email, created_at`

func scanVendor(row rowScanner) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := row.Scan(&vendor.ID, &vendor.OrganizationID, &vendor.Name,
		&vendor.Phone, &vendor.Email, &vendor.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	query := `
		INSERT INTO vendors (organization_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + vendorColumns

	return scanVendor(r.pool.QueryRow(ctx, query,
		vendor.OrganizationID, vendor.Name, vendor.Phone, vendor.Email))
}

func (r *VendorRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors
		WHERE organization_id = $1 AND id = $2`

	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

func (r *VendorRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors
		WHERE organization_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
