package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrOfficerUsernameRequired = errors.New("officer username is required")
	ErrOfficerBranchRequired   = errors.New("officer branch is required")
)

// LoanOfficer is a field agent identity, one per user. Officers own
// collection sheets and posting batches and authenticate with an API key.
type LoanOfficer struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	BranchID       int64     `json:"branchId"`
	Username       string    `json:"username"`
	APIKey         string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (o *LoanOfficer) Validate() error {
	if o.Username == "" {
		return ErrOfficerUsernameRequired
	}
	if len(o.Username) > MaxNameLength {
		return ErrNameTooLong
	}
	if o.BranchID <= 0 {
		return ErrOfficerBranchRequired
	}
	return nil
}

// OfficerRepository provides persistence for loan officers.
type OfficerRepository interface {
	Create(ctx context.Context, officer *LoanOfficer) (*LoanOfficer, error)
	GetByID(ctx context.Context, organizationID, id int64) (*LoanOfficer, error)
	// GetByAPIKey resolves the bearer key presented by a request to the
	// officer and, through it, the caller's organization scope.
	GetByAPIKey(ctx context.Context, apiKey string) (*LoanOfficer, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*LoanOfficer, error)
}
