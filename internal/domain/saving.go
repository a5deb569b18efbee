package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSavingNameRequired    = errors.New("saving account name is required")
	ErrSavingAccountRequired = errors.New("saving account number is required")
	ErrSavingStatusInvalid   = errors.New("unknown saving status")
	ErrSavingAccountExists   = errors.New("saving account number already exists")
)

// SavingStatus is the closed set of saving account states.
type SavingStatus string

const (
	SavingStatusActive  SavingStatus = "Active"
	SavingStatusDormant SavingStatus = "Dormant"
)

// Valid reports whether s is a known saving status.
func (s SavingStatus) Valid() bool {
	return s == SavingStatusActive || s == SavingStatusDormant
}

// Saving is a borrower's savings account. Its ledger balance accumulates on
// each deposit; opening balances are seeded from the borrower's combined
// ledger across all accounts (see SavingService for the coupling caveat).
type Saving struct {
	ID              int64        `json:"id"`
	OrganizationID  int64        `json:"organizationId"`
	BorrowerID      int64        `json:"borrowerId"`
	Name            string       `json:"name"`
	AccountNumber   string       `json:"accountNumber"`
	Product         string       `json:"product"`
	LedgerBalance   Money        `json:"ledgerBalance"`
	LastTransaction *time.Time   `json:"lastTransaction,omitempty"`
	Status          SavingStatus `json:"status"`
	CreatedAt       time.Time    `json:"createdAt"`
}

func (s *Saving) Validate() error {
	if s.Name == "" {
		return ErrSavingNameRequired
	}
	if s.AccountNumber == "" {
		return ErrSavingAccountRequired
	}
	if !s.Status.Valid() {
		return ErrSavingStatusInvalid
	}
	return nil
}

// SumLedger totals the ledger balances across accounts, rounded.
func SumLedger(savings []*Saving) Money {
	amounts := make([]Money, len(savings))
	for i, s := range savings {
		amounts[i] = s.LedgerBalance
	}
	return SumMoney(amounts)
}

// SavingRepository provides persistence for saving accounts.
type SavingRepository interface {
	Create(ctx context.Context, saving *Saving) (*Saving, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Saving, error)
	GetForUpdateTx(tx interface{}, organizationID, id int64) (*Saving, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*Saving, error)
	ListByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*Saving, error)
	// UpdateBalanceTx persists ledger balance and last transaction date
	// inside the deposit transaction.
	UpdateBalanceTx(tx interface{}, saving *Saving) error
}
