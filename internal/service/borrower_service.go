package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// BorrowerService manages borrower records and their derived totals.
type BorrowerService struct {
	borrowerRepo domain.BorrowerRepository
	loanRepo     domain.LoanRepository
	branchRepo   domain.BranchRepository
}

func NewBorrowerService(borrowerRepo domain.BorrowerRepository, loanRepo domain.LoanRepository, branchRepo domain.BranchRepository) *BorrowerService {
	return &BorrowerService{borrowerRepo: borrowerRepo, loanRepo: loanRepo, branchRepo: branchRepo}
}

// RegisterBorrowerInput carries the fields for a new borrower. UniqueID is
// optional; a UUID is assigned when empty.
type RegisterBorrowerInput struct {
	BranchID int64
	FullName string
	Business *string
	UniqueID string
	Mobile   *string
	Email    *string
	Status   domain.BorrowerStatus
}

func (s *BorrowerService) RegisterBorrower(ctx context.Context, organizationID int64, input RegisterBorrowerInput) (*domain.Borrower, error) {
	status := input.Status
	if status == "" {
		status = domain.BorrowerStatusActive
	}

	uniqueID := input.UniqueID
	if uniqueID == "" {
		uniqueID = uuid.New().String()
	}

	borrower := &domain.Borrower{
		OrganizationID: organizationID,
		BranchID:       input.BranchID,
		FullName:       input.FullName,
		Business:       input.Business,
		UniqueID:       uniqueID,
		Mobile:         input.Mobile,
		Email:          input.Email,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
	if err := borrower.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, organizationID, input.BranchID); err != nil {
		return nil, err
	}

	return s.borrowerRepo.Create(ctx, borrower)
}

func (s *BorrowerService) GetBorrower(ctx context.Context, organizationID, id int64) (*domain.Borrower, error) {
	return s.borrowerRepo.GetByID(ctx, organizationID, id)
}

func (s *BorrowerService) GetBorrowers(ctx context.Context, organizationID int64) ([]*domain.Borrower, error) {
	return s.borrowerRepo.ListByOrganization(ctx, organizationID)
}

// BorrowerProfile is a borrower together with totals derived from their loans.
type BorrowerProfile struct {
	Borrower *domain.Borrower      `json:"borrower"`
	Totals   domain.BorrowerTotals `json:"totals"`
	Loans    []*domain.Loan        `json:"loans"`
}

// GetProfile returns the borrower with paid and outstanding totals summed
// across all their loans.
func (s *BorrowerService) GetProfile(ctx context.Context, organizationID, id int64) (*BorrowerProfile, error) {
	borrower, err := s.borrowerRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByBorrower(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	return &BorrowerProfile{
		Borrower: borrower,
		Totals:   domain.ComputeBorrowerTotals(loans),
		Loans:    loans,
	}, nil
}

func (s *BorrowerService) UpdateStatus(ctx context.Context, organizationID, id int64, status domain.BorrowerStatus) (*domain.Borrower, error) {
	if !status.Valid() {
		return nil, domain.ErrBorrowerStatusInvalid
	}

	borrower, err := s.borrowerRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	borrower.Status = status
	return s.borrowerRepo.Update(ctx, borrower)
}
