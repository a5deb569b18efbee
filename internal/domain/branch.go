package domain

import (
	"context"
	"time"
)

// Branch is an organization's operating location. Borrowers, loans and
// expenses are scoped to branches for the branch-level reports.
type Branch struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (b *Branch) Validate() error {
	if b.Name == "" {
		return ErrNameRequired
	}
	if len(b.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// BranchRepository provides persistence for branches.
type BranchRepository interface {
	Create(ctx context.Context, branch *Branch) (*Branch, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Branch, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*Branch, error)
}
