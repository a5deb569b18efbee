package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/websocket"
)

// LoanService manages the loan book for an organization.
type LoanService struct {
	loanRepo     domain.LoanRepository
	borrowerRepo domain.BorrowerRepository
	branchRepo   domain.BranchRepository
	officerRepo  domain.OfficerRepository
	publisher    websocket.EventPublisher
}

func NewLoanService(
	loanRepo domain.LoanRepository,
	borrowerRepo domain.BorrowerRepository,
	branchRepo domain.BranchRepository,
	officerRepo domain.OfficerRepository,
	publisher websocket.EventPublisher,
) *LoanService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &LoanService{
		loanRepo:     loanRepo,
		borrowerRepo: borrowerRepo,
		branchRepo:   branchRepo,
		officerRepo:  officerRepo,
		publisher:    publisher,
	}
}

// CreateLoanInput carries the fields for disbursing a new loan.
type CreateLoanInput struct {
	BranchID      *int64
	BorrowerID    *int64
	OfficerID     *int64
	Principal     domain.Money
	InterestRate  decimal.Decimal
	Fees          domain.Money
	Penalty       domain.Money
	TenureDays    int32
	DisbursedDate time.Time
}

// UpdateLoanInput carries the editable fields of an existing loan. Nil
// pointers leave the current value unchanged.
type UpdateLoanInput struct {
	BranchID      *int64
	BorrowerID    *int64
	OfficerID     *int64
	Principal     *domain.Money
	InterestRate  *decimal.Decimal
	Fees          *domain.Money
	Penalty       *domain.Money
	TenureDays    *int32
	DisbursedDate *time.Time
}

func (s *LoanService) checkReferences(ctx context.Context, organizationID int64, branchID, borrowerID, officerID *int64) error {
	if branchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, organizationID, *branchID); err != nil {
			return err
		}
	}
	if borrowerID != nil {
		if _, err := s.borrowerRepo.GetByID(ctx, organizationID, *borrowerID); err != nil {
			return err
		}
	}
	if officerID != nil {
		if _, err := s.officerRepo.GetByID(ctx, organizationID, *officerID); err != nil {
			return err
		}
	}
	return nil
}

// CreateLoan validates the input, derives maturity and status, and persists
// the loan. New loans always start Active with nothing paid.
func (s *LoanService) CreateLoan(ctx context.Context, organizationID int64, input CreateLoanInput) (*domain.Loan, error) {
	if err := s.checkReferences(ctx, organizationID, input.BranchID, input.BorrowerID, input.OfficerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		OrganizationID: organizationID,
		BranchID:       input.BranchID,
		BorrowerID:     input.BorrowerID,
		OfficerID:      input.OfficerID,
		Principal:      input.Principal,
		InterestRate:   input.InterestRate,
		Fees:           input.Fees,
		Penalty:        input.Penalty,
		TenureDays:     input.TenureDays,
		Status:         domain.LoanStatusActive,
		DisbursedDate:  input.DisbursedDate,
		Paid:           domain.ZeroMoney(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}
	loan.Normalize()

	created, err := s.loanRepo.Create(ctx, loan)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organizationID, websocket.LoanCreated(created))
	return created, nil
}

// UpdateLoan applies partial edits to a loan, then re-derives maturity and
// status from the new terms.
func (s *LoanService) UpdateLoan(ctx context.Context, organizationID, id int64, input UpdateLoanInput) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, organizationID, input.BranchID, input.BorrowerID, input.OfficerID); err != nil {
		return nil, err
	}

	if input.BranchID != nil {
		loan.BranchID = input.BranchID
	}
	if input.BorrowerID != nil {
		loan.BorrowerID = input.BorrowerID
	}
	if input.OfficerID != nil {
		loan.OfficerID = input.OfficerID
	}
	if input.Principal != nil {
		loan.Principal = *input.Principal
	}
	if input.InterestRate != nil {
		loan.InterestRate = *input.InterestRate
	}
	if input.Fees != nil {
		loan.Fees = *input.Fees
	}
	if input.Penalty != nil {
		loan.Penalty = *input.Penalty
	}
	if input.TenureDays != nil {
		loan.TenureDays = *input.TenureDays
	}
	if input.DisbursedDate != nil {
		loan.DisbursedDate = *input.DisbursedDate
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}
	loan.Normalize()
	loan.UpdatedAt = time.Now().UTC()

	updated, err := s.loanRepo.Update(ctx, loan)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organizationID, websocket.LoanUpdated(updated))
	return updated, nil
}

// UpdateStatus moves a loan to a new status, enforcing the transition table.
// Closed loans never transition anywhere.
func (s *LoanService) UpdateStatus(ctx context.Context, organizationID, id int64, next domain.LoanStatus) (*domain.Loan, error) {
	if !next.Valid() {
		return nil, domain.ErrLoanStatusInvalid
	}

	loan, err := s.loanRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if loan.Status == next {
		return loan, nil
	}
	if !loan.Status.CanTransitionTo(next) {
		return nil, domain.ErrLoanStatusTransition
	}

	loan.Status = next
	loan.UpdatedAt = time.Now().UTC()

	updated, err := s.loanRepo.Update(ctx, loan)
	if err != nil {
		return nil, err
	}

	if next == domain.LoanStatusClosed {
		s.publisher.Publish(organizationID, websocket.LoanClosed(updated))
	} else {
		s.publisher.Publish(organizationID, websocket.LoanUpdated(updated))
	}
	return updated, nil
}

func (s *LoanService) GetLoan(ctx context.Context, organizationID, id int64) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, organizationID, id)
}

func (s *LoanService) GetLoans(ctx context.Context, scope domain.Scope) ([]*domain.Loan, error) {
	return s.loanRepo.ListByScope(ctx, scope)
}

func (s *LoanService) GetLoansByStatus(ctx context.Context, scope domain.Scope, status domain.LoanStatus) ([]*domain.Loan, error) {
	if !status.Valid() {
		return nil, domain.ErrLoanStatusInvalid
	}
	return s.loanRepo.ListByStatus(ctx, scope, status)
}

func (s *LoanService) GetLoansByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*domain.Loan, error) {
	if _, err := s.borrowerRepo.GetByID(ctx, organizationID, borrowerID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListByBorrower(ctx, organizationID, borrowerID)
}
