package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRepaymentLoanRequired = errors.New("repayment loan is required")
)

// Repayment is a single posted payment against a loan. Repayments are
// append-only; a loan's paid field is the sum of its repayments and is
// resynced from them on every post.
type Repayment struct {
	ID        int64     `json:"id"`
	LoanID    int64     `json:"loanId"`
	Amount    Money     `json:"amount"`
	Date      time.Time `json:"date"`
	PostedBy  int64     `json:"postedBy"` // officer id
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the posting constraints.
func (r *Repayment) Validate() error {
	if r.LoanID <= 0 {
		return ErrRepaymentLoanRequired
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// MostRecentRepayment picks the latest repayment by date, ties broken by
// insertion order (higher id wins). Returns nil for an empty slice.
func MostRecentRepayment(reps []*Repayment) *Repayment {
	var latest *Repayment
	for _, r := range reps {
		if latest == nil {
			latest = r
			continue
		}
		if r.Date.After(latest.Date) || (r.Date.Equal(latest.Date) && r.ID > latest.ID) {
			latest = r
		}
	}
	return latest
}

// RepaymentRepository provides persistence for repayments. The Tx variants
// run inside the posting transaction so the insert and the loan resync either
// both land or neither does.
type RepaymentRepository interface {
	CreateTx(tx interface{}, rep *Repayment) (*Repayment, error)
	// SumAmountByLoanTx is the authoritative paid total for a loan: the sum of
	// all its repayment amounts, zero when there are none.
	SumAmountByLoanTx(tx interface{}, loanID int64) (Money, error)
	ListByLoan(ctx context.Context, organizationID, loanID int64) ([]*Repayment, error)
	// ListByScope returns repayments for loans in scope, newest first,
	// optionally bounded by a date range.
	ListByScope(ctx context.Context, scope Scope, dateRange DateRange) ([]*Repayment, error)
}
