package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPostingLoanRequired = errors.New("posting item loan is required")
)

// PostingBatch groups manual ledger adjustments an officer applies to several
// loans at once. The batch total is derived from its items, never stored.
type PostingBatch struct {
	ID        int64     `json:"id"`
	OfficerID int64     `json:"officerId"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostingItem is one adjustment inside a batch.
type PostingItem struct {
	ID        int64     `json:"id"`
	BatchID   int64     `json:"batchId"`
	LoanID    int64     `json:"loanId"`
	Amount    Money     `json:"amount"`
	Remarks   *string   `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *PostingItem) Validate() error {
	if i.LoanID <= 0 {
		return ErrPostingLoanRequired
	}
	return nil
}

// BatchTotal sums the item amounts of a batch, rounded to two places.
func BatchTotal(items []*PostingItem) Money {
	amounts := make([]Money, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return SumMoney(amounts)
}

// PostingRepository provides persistence for posting batches and items.
// Batches are scoped through their officer's organization.
type PostingRepository interface {
	CreateBatch(ctx context.Context, batch *PostingBatch) (*PostingBatch, error)
	GetBatch(ctx context.Context, organizationID, id int64) (*PostingBatch, error)
	ListBatches(ctx context.Context, organizationID int64) ([]*PostingBatch, error)
	CreateItem(ctx context.Context, item *PostingItem) (*PostingItem, error)
	ListItems(ctx context.Context, organizationID, batchID int64) ([]*PostingItem, error)
}
