package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCollectionLoanRequired = errors.New("collection item loan is required")
)

// CollectionSheet is a loan officer's daily manual collection record. It is a
// recording surface only: the Repayment posted alongside each item remains
// the financially authoritative entry.
type CollectionSheet struct {
	ID        int64     `json:"id"`
	OfficerID int64     `json:"officerId"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// CollectionItem is one loan+amount pair on a sheet.
type CollectionItem struct {
	ID        int64     `json:"id"`
	SheetID   int64     `json:"sheetId"`
	LoanID    int64     `json:"loanId"`
	Amount    Money     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *CollectionItem) Validate() error {
	if i.LoanID <= 0 {
		return ErrCollectionLoanRequired
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// CollectionRepository provides persistence for collection sheets and items.
// Sheets are scoped through their officer's organization.
type CollectionRepository interface {
	CreateSheet(ctx context.Context, sheet *CollectionSheet) (*CollectionSheet, error)
	GetSheet(ctx context.Context, organizationID, id int64) (*CollectionSheet, error)
	ListSheets(ctx context.Context, organizationID int64) ([]*CollectionSheet, error)
	// CreateItemTx inserts an item inside the same transaction that posts the
	// matching repayment.
	CreateItemTx(tx interface{}, item *CollectionItem) (*CollectionItem, error)
	ListItemsBySheet(ctx context.Context, organizationID, sheetID int64) ([]*CollectionItem, error)
	// ListItemsByScope returns items joined through their loan to the scope.
	ListItemsByScope(ctx context.Context, scope Scope, dateRange DateRange) ([]*CollectionItem, error)
}
