package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanPrincipalInvalid  = errors.New("loan principal must be positive")
	ErrLoanRateInvalid       = errors.New("loan interest rate must not be negative")
	ErrLoanFeesInvalid       = errors.New("loan fees must not be negative")
	ErrLoanPenaltyInvalid    = errors.New("loan penalty must not be negative")
	ErrLoanTenureInvalid     = errors.New("loan tenure must be at least 1 day")
	ErrLoanStatusInvalid     = errors.New("unknown loan status")
	ErrLoanStatusTransition  = errors.New("loan status transition not allowed")
	ErrLoanBorrowerInvalid   = errors.New("loan borrower does not belong to the organization")
	ErrLoanDisbursedRequired = errors.New("loan disbursed date is required")
)

// LoanStatus is the closed set of loan states. Overdue and PAR30 are set by
// external collectors (such as a periodic delinquency job); the core only
// auto-transitions to Closed when a loan is fully paid.
type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "Active"
	LoanStatusOverdue LoanStatus = "Overdue"
	LoanStatusPAR30   LoanStatus = "PAR30"
	LoanStatusClosed  LoanStatus = "Closed"
)

// Valid reports whether s is a known loan status.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusPAR30, LoanStatusClosed:
		return true
	}
	return false
}

// loanStatusTransitions is the allowed-transition table. Closed is terminal:
// a fully paid loan never reopens, even if its paid amount is later reduced.
var loanStatusTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusActive:  {LoanStatusOverdue, LoanStatusPAR30, LoanStatusClosed},
	LoanStatusOverdue: {LoanStatusActive, LoanStatusPAR30, LoanStatusClosed},
	LoanStatusPAR30:   {LoanStatusActive, LoanStatusOverdue, LoanStatusClosed},
	LoanStatusClosed:  {},
}

// CanTransitionTo reports whether the status may move to next.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Loan is a disbursed credit belonging to an organization, optionally scoped
// to a branch, borrower and officer. Interest, total due and balance are
// derived from the stored fields; Maturity and the Closed status are kept
// consistent by Normalize, which callers invoke before every save.
type Loan struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organizationId"`
	BranchID       *int64          `json:"branchId,omitempty"`
	BorrowerID     *int64          `json:"borrowerId,omitempty"`
	OfficerID      *int64          `json:"officerId,omitempty"`
	Principal      Money           `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"` // percent
	Fees           Money           `json:"fees"`
	Penalty        Money           `json:"penalty"`
	TenureDays     int32           `json:"tenureDays"`
	Status         LoanStatus      `json:"status"`
	DisbursedDate  time.Time       `json:"disbursedDate"`
	Maturity       time.Time       `json:"maturity"`
	Paid           Money           `json:"paid"`
	LastPayment    *time.Time      `json:"lastPaymentDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Interest is the simple interest on the principal, rounded to two places.
func (l *Loan) Interest() Money {
	return l.Principal.MulRate(l.InterestRate)
}

// TotalDue is principal + interest + fees + penalty, rounded.
func (l *Loan) TotalDue() Money {
	return l.Principal.Add(l.Interest()).Add(l.Fees).Add(l.Penalty).Round2()
}

// OutstandingBalance is total due minus paid, rounded. It may legitimately be
// negative when a loan is overpaid; callers decide whether to treat the
// surplus as credit.
func (l *Loan) OutstandingBalance() Money {
	return l.TotalDue().Sub(l.Paid).Round2()
}

// MaturityDate is the disbursed date plus the tenure in days.
func (l *Loan) MaturityDate() time.Time {
	return l.DisbursedDate.AddDate(0, 0, int(l.TenureDays))
}

// PortfolioValue is principal + interest, excluding fees and penalty. It is
// deliberately not TotalDue: portfolio-sizing reports count the lending book,
// per-loan dues add the charges on top.
func (l *Loan) PortfolioValue() Money {
	return l.Principal.Add(l.Interest()).Round2()
}

// ApplyStatusRule forces the status to Closed once paid covers the total due.
// The transition is one-directional: an already Closed loan stays Closed.
func (l *Loan) ApplyStatusRule() {
	if l.Paid.GreaterThanOrEqual(l.TotalDue()) {
		l.Status = LoanStatusClosed
	}
}

// Normalize recomputes the derived stored fields (maturity, closed status)
// from the current field values. Callers run it before persisting a create
// or update; it touches nothing else.
func (l *Loan) Normalize() {
	l.Maturity = l.MaturityDate()
	l.ApplyStatusRule()
}

// Validate checks the stored field constraints.
func (l *Loan) Validate() error {
	if !l.Principal.IsPositive() {
		return ErrLoanPrincipalInvalid
	}
	if l.InterestRate.IsNegative() {
		return ErrLoanRateInvalid
	}
	if l.Fees.IsNegative() {
		return ErrLoanFeesInvalid
	}
	if l.Penalty.IsNegative() {
		return ErrLoanPenaltyInvalid
	}
	if l.TenureDays < 1 {
		return ErrLoanTenureInvalid
	}
	if !l.Status.Valid() {
		return ErrLoanStatusInvalid
	}
	if l.DisbursedDate.IsZero() {
		return ErrLoanDisbursedRequired
	}
	return nil
}

// SumPaid totals the paid amounts across loans, rounded.
func SumPaid(loans []*Loan) Money {
	amounts := make([]Money, len(loans))
	for i, l := range loans {
		amounts[i] = l.Paid
	}
	return SumMoney(amounts)
}

// SumOutstanding totals the outstanding balances across loans, rounded.
func SumOutstanding(loans []*Loan) Money {
	amounts := make([]Money, len(loans))
	for i, l := range loans {
		amounts[i] = l.OutstandingBalance()
	}
	return SumMoney(amounts)
}

// LoanRepository provides persistence for loans. All read paths are keyed by
// organization; a loan outside the caller's scope behaves as not found.
type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) (*Loan, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Loan, error)
	// GetForUpdateTx loads the loan inside tx with a row lock, so paid/status
	// updates are atomic with the triggering write.
	GetForUpdateTx(tx interface{}, organizationID, id int64) (*Loan, error)
	ListByScope(ctx context.Context, scope Scope) ([]*Loan, error)
	ListByStatus(ctx context.Context, scope Scope, status LoanStatus) ([]*Loan, error)
	ListByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*Loan, error)
	Update(ctx context.Context, loan *Loan) (*Loan, error)
	// UpdatePaymentTx persists paid, status and last payment date inside tx.
	UpdatePaymentTx(tx interface{}, loan *Loan) error
}
