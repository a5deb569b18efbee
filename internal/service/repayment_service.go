package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/websocket"
)

// RepaymentService posts repayments against loans. Posting and the loan
// resync happen in a single transaction with the loan row locked, so
// concurrent posts against the same loan serialize.
type RepaymentService struct {
	db            TxBeginner
	loanRepo      domain.LoanRepository
	repaymentRepo domain.RepaymentRepository
	publisher     websocket.EventPublisher
}

func NewRepaymentService(
	db TxBeginner,
	loanRepo domain.LoanRepository,
	repaymentRepo domain.RepaymentRepository,
	publisher websocket.EventPublisher,
) *RepaymentService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &RepaymentService{
		db:            db,
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		publisher:     publisher,
	}
}

// PostRepaymentInput carries a single repayment to record.
type PostRepaymentInput struct {
	LoanID   int64
	Amount   domain.Money
	Date     time.Time
	PostedBy int64
}

// PostRepayment records a repayment and resyncs the loan's paid total from
// the full repayment ledger. The loan closes when paid covers the total due;
// it never reopens here even if a later correction reduces paid.
func (s *RepaymentService) PostRepayment(ctx context.Context, organizationID int64, input PostRepaymentInput) (*domain.Repayment, *domain.Loan, error) {
	rep := &domain.Repayment{
		LoanID:    input.LoanID,
		Amount:    input.Amount,
		Date:      input.Date,
		PostedBy:  input.PostedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := rep.Validate(); err != nil {
		return nil, nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loan, err := s.loanRepo.GetForUpdateTx(tx, organizationID, input.LoanID)
	if err != nil {
		return nil, nil, err
	}

	created, err := s.repaymentRepo.CreateTx(tx, rep)
	if err != nil {
		return nil, nil, fmt.Errorf("create repayment: %w", err)
	}

	total, err := s.repaymentRepo.SumAmountByLoanTx(tx, loan.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("sum repayments: %w", err)
	}

	paymentDate := input.Date
	loan.Paid = total
	loan.LastPayment = &paymentDate
	loan.ApplyStatusRule()

	if err := s.loanRepo.UpdatePaymentTx(tx, loan); err != nil {
		return nil, nil, fmt.Errorf("update loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.publisher.Publish(organizationID, websocket.RepaymentPosted(created))
	s.publisher.Publish(organizationID, websocket.LoanUpdated(loan))
	return created, loan, nil
}

// RecomputePaid resyncs a loan's paid total from its repayment ledger without
// inserting anything. Running it twice in a row leaves the loan unchanged.
func (s *RepaymentService) RecomputePaid(ctx context.Context, organizationID, loanID int64) (*domain.Loan, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loan, err := s.loanRepo.GetForUpdateTx(tx, organizationID, loanID)
	if err != nil {
		return nil, err
	}

	total, err := s.repaymentRepo.SumAmountByLoanTx(tx, loan.ID)
	if err != nil {
		return nil, fmt.Errorf("sum repayments: %w", err)
	}

	loan.Paid = total
	loan.ApplyStatusRule()

	if err := s.loanRepo.UpdatePaymentTx(tx, loan); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return loan, nil
}

// GetRepayments lists a loan's repayments in posting order.
func (s *RepaymentService) GetRepayments(ctx context.Context, organizationID, loanID int64) ([]*domain.Repayment, error) {
	return s.repaymentRepo.ListByLoan(ctx, organizationID, loanID)
}
