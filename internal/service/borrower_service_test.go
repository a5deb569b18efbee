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

func newBorrowerFixture() (*BorrowerService, *testutil.MockBorrowerRepository, *testutil.MockLoanRepository) {
	borrowerRepo := testutil.NewMockBorrowerRepository()
	loanRepo := testutil.NewMockLoanRepository()
	branchRepo := testutil.NewMockBranchRepository()
	branchRepo.AddBranch(&domain.Branch{ID: 1, OrganizationID: 1, Name: "Ntinda"})
	return NewBorrowerService(borrowerRepo, loanRepo, branchRepo), borrowerRepo, loanRepo
}

func TestRegisterBorrower_AssignsUniqueID(t *testing.T) {
	svc, _, _ := newBorrowerFixture()

	business := "Market stall"
	mobile := "+256700000001"
	created, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{
		BranchID: 1,
		FullName: "Grace Auma",
		Business: &business,
		Mobile:   &mobile,
	})
	if err != nil {
		t.Fatalf("RegisterBorrower: %v", err)
	}
	if created.UniqueID == "" {
		t.Error("unique id was not assigned")
	}
	if created.Status != domain.BorrowerStatusActive {
		t.Errorf("status = %s, want Active", created.Status)
	}
	if created.BranchID != 1 {
		t.Errorf("branch id = %d, want 1", created.BranchID)
	}
	if created.Mobile == nil || *created.Mobile != mobile {
		t.Errorf("mobile = %v, want %s", created.Mobile, mobile)
	}
}

func TestRegisterBorrower_DuplicateUniqueID(t *testing.T) {
	svc, _, _ := newBorrowerFixture()

	if _, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{BranchID: 1, FullName: "A", UniqueID: "b-1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{BranchID: 1, FullName: "B", UniqueID: "b-1"})
	if !errors.Is(err, domain.ErrBorrowerUniqueIDExists) {
		t.Errorf("err = %v, want ErrBorrowerUniqueIDExists", err)
	}
}

func TestRegisterBorrower_NameRequired(t *testing.T) {
	svc, _, _ := newBorrowerFixture()

	_, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{BranchID: 1})
	if !errors.Is(err, domain.ErrBorrowerNameRequired) {
		t.Errorf("err = %v, want ErrBorrowerNameRequired", err)
	}
}

func TestRegisterBorrower_BranchRequired(t *testing.T) {
	svc, _, _ := newBorrowerFixture()

	_, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{FullName: "Grace Auma"})
	if !errors.Is(err, domain.ErrBorrowerBranchRequired) {
		t.Errorf("err = %v, want ErrBorrowerBranchRequired", err)
	}
}

func TestRegisterBorrower_UnknownBranch(t *testing.T) {
	svc, _, _ := newBorrowerFixture()

	_, err := svc.RegisterBorrower(context.Background(), 1, RegisterBorrowerInput{BranchID: 9, FullName: "Grace Auma"})
	if !errors.Is(err, domain.ErrBranchNotFound) {
		t.Errorf("err = %v, want ErrBranchNotFound", err)
	}
}

func TestGetProfile_TotalsAcrossLoans(t *testing.T) {
	svc, borrowerRepo, loanRepo := newBorrowerFixture()

	borrowerRepo.AddBorrower(&domain.Borrower{ID: 1, OrganizationID: 1, BranchID: 1, FullName: "Grace Auma", UniqueID: "b-1", Status: domain.BorrowerStatusActive})

	borrowerID := int64(1)
	for i, terms := range []struct {
		principal int64
		paid      int64
	}{{1000, 300}, {500, 100}} {
		loan := &domain.Loan{
			ID:             int64(i + 1),
			OrganizationID: 1,
			BorrowerID:     &borrowerID,
			Principal:      domain.MoneyFromInt(terms.principal),
			InterestRate:   decimal.NewFromInt(10),
			TenureDays:     30,
			Status:         domain.LoanStatusActive,
			DisbursedDate:  time.Now().UTC(),
			Paid:           domain.MoneyFromInt(terms.paid),
		}
		loanRepo.AddLoan(loan)
	}

	profile, err := svc.GetProfile(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got := profile.Totals.TotalPaid.String(); got != "400.00" {
		t.Errorf("total paid = %s, want 400.00", got)
	}
	// (1100 - 300) + (550 - 100)
	if got := profile.Totals.LoanBalance.String(); got != "1250.00" {
		t.Errorf("loan balance = %s, want 1250.00", got)
	}
	if len(profile.Loans) != 2 {
		t.Errorf("loans = %d, want 2", len(profile.Loans))
	}
}

func TestUpdateBorrowerStatus(t *testing.T) {
	svc, borrowerRepo, _ := newBorrowerFixture()
	borrowerRepo.AddBorrower(&domain.Borrower{ID: 1, OrganizationID: 1, BranchID: 1, FullName: "A", UniqueID: "b-1", Status: domain.BorrowerStatusActive})

	updated, err := svc.UpdateStatus(context.Background(), 1, 1, domain.BorrowerStatusDelinquent)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.BorrowerStatusDelinquent {
		t.Errorf("status = %s, want Delinquent", updated.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), 1, 1, domain.BorrowerStatus("Gone"))
	if !errors.Is(err, domain.ErrBorrowerStatusInvalid) {
		t.Errorf("err = %v, want ErrBorrowerStatusInvalid", err)
	}
}
