package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBorrowerNameRequired   = errors.New("borrower full name is required")
	ErrBorrowerBranchRequired = errors.New("borrower branch is required")
	ErrBorrowerStatusInvalid  = errors.New("unknown borrower status")
	ErrBorrowerUniqueIDExists = errors.New("borrower unique id already exists")
)

// BorrowerStatus is the closed set of borrower states.
type BorrowerStatus string

const (
	BorrowerStatusActive     BorrowerStatus = "Active"
	BorrowerStatusInactive   BorrowerStatus = "Inactive"
	BorrowerStatusDelinquent BorrowerStatus = "Delinquent"
)

// Valid reports whether s is a known borrower status.
func (s BorrowerStatus) Valid() bool {
	switch s {
	case BorrowerStatusActive, BorrowerStatusInactive, BorrowerStatusDelinquent:
		return true
	}
	return false
}

// Borrower is a client of the organization, registered at a branch. Total
// paid and outstanding balance are derived from the borrower's loans, never
// stored.
type Borrower struct {
	ID             int64          `json:"id"`
	OrganizationID int64          `json:"organizationId"`
	BranchID       int64          `json:"branchId"`
	FullName       string         `json:"fullName"`
	Business       *string        `json:"business,omitempty"`
	UniqueID       string         `json:"uniqueId"`
	Mobile         *string        `json:"mobile,omitempty"`
	Email          *string        `json:"email,omitempty"`
	Status         BorrowerStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (b *Borrower) Validate() error {
	if b.FullName == "" {
		return ErrBorrowerNameRequired
	}
	if len(b.FullName) > MaxNameLength {
		return ErrNameTooLong
	}
	if b.BranchID <= 0 {
		return ErrBorrowerBranchRequired
	}
	if !b.Status.Valid() {
		return ErrBorrowerStatusInvalid
	}
	return nil
}

// BorrowerTotals carries the derived per-borrower figures.
type BorrowerTotals struct {
	TotalPaid   Money `json:"totalPaid"`
	LoanBalance Money `json:"loanBalance"`
}

// ComputeBorrowerTotals derives the paid and outstanding totals from the
// borrower's loans.
func ComputeBorrowerTotals(loans []*Loan) BorrowerTotals {
	return BorrowerTotals{
		TotalPaid:   SumPaid(loans),
		LoanBalance: SumOutstanding(loans),
	}
}

// BorrowerRepository provides persistence for borrowers.
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *Borrower) (*Borrower, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Borrower, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*Borrower, error)
	CountByOrganization(ctx context.Context, organizationID int64) (int64, error)
	Update(ctx context.Context, borrower *Borrower) (*Borrower, error)
}
