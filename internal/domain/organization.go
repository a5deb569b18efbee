package domain

import (
	"context"
	"time"
)

// Organization is the tenant root. Every branch, borrower, loan, saving,
// vendor and expense belongs to exactly one organization.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the organization constraints.
func (o *Organization) Validate() error {
	if o.Name == "" {
		return ErrNameRequired
	}
	if len(o.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// OrganizationRepository provides persistence for organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) (*Organization, error)
	GetByID(ctx context.Context, id int64) (*Organization, error)
}
