package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/testutil"
)

func newPostingFixture(t *testing.T) (*PostingService, *testutil.MockLoanRepository) {
	t.Helper()
	officerRepo := testutil.NewMockOfficerRepository()
	officerRepo.AddOfficer(&domain.LoanOfficer{ID: 1, OrganizationID: 1, BranchID: 1, Username: "okello"})
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewPostingService(testutil.NewMockPostingRepository(officerRepo), loanRepo, officerRepo)
	return svc, loanRepo
}

func TestPostingBatch_TotalDerivedFromItems(t *testing.T) {
	svc, loanRepo := newPostingFixture(t)
	loan := seedLoan(loanRepo, 1)

	batch, err := svc.CreateBatch(context.Background(), 1, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	remarks := "waiver"
	if _, err := svc.AddItem(context.Background(), 1, batch.ID, loan.ID, domain.MoneyFromInt(100), nil); err != nil {
		t.Fatalf("first item: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), 1, batch.ID, loan.ID, domain.MoneyFromInt(-40), &remarks); err != nil {
		t.Fatalf("second item: %v", err)
	}

	detail, err := svc.GetBatchDetail(context.Background(), 1, batch.ID)
	if err != nil {
		t.Fatalf("GetBatchDetail: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Errorf("items = %d, want 2", len(detail.Items))
	}
	if got := detail.Total.String(); got != "60.00" {
		t.Errorf("total = %s, want 60.00", got)
	}
}

func TestAddItem_UnknownBatchOrLoan(t *testing.T) {
	svc, loanRepo := newPostingFixture(t)
	loan := seedLoan(loanRepo, 1)

	_, err := svc.AddItem(context.Background(), 1, 9, loan.ID, domain.MoneyFromInt(10), nil)
	if !errors.Is(err, domain.ErrBatchNotFound) {
		t.Errorf("err = %v, want ErrBatchNotFound", err)
	}

	batch, _ := svc.CreateBatch(context.Background(), 1, 1, time.Now().UTC())
	_, err = svc.AddItem(context.Background(), 1, batch.ID, 99, domain.MoneyFromInt(10), nil)
	if !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("err = %v, want ErrLoanNotFound", err)
	}
}

func TestCreateBatch_UnknownOfficer(t *testing.T) {
	svc, _ := newPostingFixture(t)

	_, err := svc.CreateBatch(context.Background(), 1, 42, time.Now().UTC())
	if !errors.Is(err, domain.ErrOfficerNotFound) {
		t.Errorf("err = %v, want ErrOfficerNotFound", err)
	}
}
