package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/testutil"
)

func newLoanService(t *testing.T) (*LoanService, *testutil.MockLoanRepository, *testutil.MockBorrowerRepository, *testutil.MockBranchRepository, *testutil.MockOfficerRepository) {
	t.Helper()
	loanRepo := testutil.NewMockLoanRepository()
	borrowerRepo := testutil.NewMockBorrowerRepository()
	branchRepo := testutil.NewMockBranchRepository()
	officerRepo := testutil.NewMockOfficerRepository()
	svc := NewLoanService(loanRepo, borrowerRepo, branchRepo, officerRepo, nil)
	return svc, loanRepo, borrowerRepo, branchRepo, officerRepo
}

func TestCreateLoan_DerivesMaturityAndStatus(t *testing.T) {
	svc, _, _, _, _ := newLoanService(t)

	disbursed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	loan, err := svc.CreateLoan(context.Background(), 1, CreateLoanInput{
		Principal:     domain.MoneyFromInt(1000),
		InterestRate:  decimal.NewFromInt(10),
		Fees:          domain.ZeroMoney(),
		Penalty:       domain.ZeroMoney(),
		TenureDays:    30,
		DisbursedDate: disbursed,
	})
	if err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}

	want := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if !loan.Maturity.Equal(want) {
		t.Errorf("maturity = %v, want %v", loan.Maturity, want)
	}
	if loan.Status != domain.LoanStatusActive {
		t.Errorf("status = %s, want Active", loan.Status)
	}
	if got := loan.TotalDue().String(); got != "1100.00" {
		t.Errorf("total due = %s, want 1100.00", got)
	}
}

func TestCreateLoan_RejectsInvalidTerms(t *testing.T) {
	svc, _, _, _, _ := newLoanService(t)

	_, err := svc.CreateLoan(context.Background(), 1, CreateLoanInput{
		Principal:     domain.ZeroMoney(),
		InterestRate:  decimal.NewFromInt(10),
		TenureDays:    30,
		DisbursedDate: time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrLoanPrincipalInvalid) {
		t.Errorf("err = %v, want ErrLoanPrincipalInvalid", err)
	}
}

func TestCreateLoan_UnknownBorrower(t *testing.T) {
	svc, _, _, _, _ := newLoanService(t)

	borrowerID := int64(42)
	_, err := svc.CreateLoan(context.Background(), 1, CreateLoanInput{
		BorrowerID:    &borrowerID,
		Principal:     domain.MoneyFromInt(1000),
		InterestRate:  decimal.NewFromInt(10),
		TenureDays:    30,
		DisbursedDate: time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrBorrowerNotFound) {
		t.Errorf("err = %v, want ErrBorrowerNotFound", err)
	}
}

func TestUpdateLoan_RecomputesMaturityAfterTenureEdit(t *testing.T) {
	svc, loanRepo, _, _, _ := newLoanService(t)
	loan := seedLoan(loanRepo, 1)

	tenure := int32(60)
	updated, err := svc.UpdateLoan(context.Background(), 1, loan.ID, UpdateLoanInput{TenureDays: &tenure})
	if err != nil {
		t.Fatalf("UpdateLoan: %v", err)
	}

	want := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	if !updated.Maturity.Equal(want) {
		t.Errorf("maturity = %v, want %v", updated.Maturity, want)
	}
}

func TestUpdateStatus_FollowsTransitionTable(t *testing.T) {
	svc, loanRepo, _, _, _ := newLoanService(t)
	loan := seedLoan(loanRepo, 1)

	updated, err := svc.UpdateStatus(context.Background(), 1, loan.ID, domain.LoanStatusOverdue)
	if err != nil {
		t.Fatalf("Active -> Overdue: %v", err)
	}
	if updated.Status != domain.LoanStatusOverdue {
		t.Errorf("status = %s, want Overdue", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), 1, loan.ID, domain.LoanStatusClosed); err != nil {
		t.Fatalf("Overdue -> Closed: %v", err)
	}

	// Closed is terminal
	_, err = svc.UpdateStatus(context.Background(), 1, loan.ID, domain.LoanStatusActive)
	if !errors.Is(err, domain.ErrLoanStatusTransition) {
		t.Errorf("Closed -> Active: err = %v, want ErrLoanStatusTransition", err)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, loanRepo, _, _, _ := newLoanService(t)
	loan := seedLoan(loanRepo, 1)

	_, err := svc.UpdateStatus(context.Background(), 1, loan.ID, domain.LoanStatus("Paused"))
	if !errors.Is(err, domain.ErrLoanStatusInvalid) {
		t.Errorf("err = %v, want ErrLoanStatusInvalid", err)
	}
}

func TestGetLoans_ScopedByBranch(t *testing.T) {
	svc, loanRepo, _, _, _ := newLoanService(t)

	branchA, branchB := int64(1), int64(2)
	for i, branch := range []*int64{&branchA, &branchA, &branchB, nil} {
		loan := &domain.Loan{
			ID:             int64(i + 1),
			OrganizationID: 1,
			BranchID:       branch,
			Principal:      domain.MoneyFromInt(100),
			InterestRate:   decimal.NewFromInt(5),
			TenureDays:     30,
			Status:         domain.LoanStatusActive,
			DisbursedDate:  time.Now().UTC(),
			Paid:           domain.ZeroMoney(),
		}
		loanRepo.AddLoan(loan)
	}

	all, err := svc.GetLoans(context.Background(), domain.OrgScope(1))
	if err != nil {
		t.Fatalf("GetLoans org: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("org scope loans = %d, want 4", len(all))
	}

	scoped, err := svc.GetLoans(context.Background(), domain.BranchScope(1, branchA))
	if err != nil {
		t.Fatalf("GetLoans branch: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("branch scope loans = %d, want 2", len(scoped))
	}
}
