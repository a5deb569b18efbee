package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/testutil"
)

type collectionFixture struct {
	svc            *CollectionService
	loanRepo       *testutil.MockLoanRepository
	repaymentRepo  *testutil.MockRepaymentRepository
	collectionRepo *testutil.MockCollectionRepository
	officerRepo    *testutil.MockOfficerRepository
}

func newCollectionFixture(t *testing.T) *collectionFixture {
	t.Helper()
	f := &collectionFixture{
		loanRepo:    testutil.NewMockLoanRepository(),
		officerRepo: testutil.NewMockOfficerRepository(),
	}
	f.repaymentRepo = testutil.NewMockRepaymentRepository(f.loanRepo)
	f.collectionRepo = testutil.NewMockCollectionRepository(f.officerRepo, f.loanRepo)
	f.svc = NewCollectionService(
		testutil.NewMockTxBeginner(), f.collectionRepo, f.loanRepo,
		f.repaymentRepo, f.officerRepo, nil,
	)
	f.officerRepo.AddOfficer(&domain.LoanOfficer{ID: 1, OrganizationID: 1, BranchID: 1, Username: "okello"})
	return f
}

func TestCreateSheet(t *testing.T) {
	f := newCollectionFixture(t)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	sheet, err := f.svc.CreateSheet(context.Background(), 1, 1, date)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if sheet.ID == 0 || sheet.OfficerID != 1 {
		t.Errorf("sheet = %+v", sheet)
	}
}

func TestCreateSheet_UnknownOfficer(t *testing.T) {
	f := newCollectionFixture(t)

	_, err := f.svc.CreateSheet(context.Background(), 1, 42, time.Now().UTC())
	if !errors.Is(err, domain.ErrOfficerNotFound) {
		t.Errorf("err = %v, want ErrOfficerNotFound", err)
	}
}

func TestRecordCollection_PostsRepaymentAndResyncsLoan(t *testing.T) {
	f := newCollectionFixture(t)
	loan := seedLoan(f.loanRepo, 1)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	sheet, err := f.svc.CreateSheet(context.Background(), 1, 1, date)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	item, err := f.svc.RecordCollection(context.Background(), 1, sheet.ID, loan.ID, domain.MoneyFromInt(75))
	if err != nil {
		t.Fatalf("RecordCollection: %v", err)
	}

	if got := item.Amount.String(); got != "75.00" {
		t.Errorf("item amount = %s, want 75.00", got)
	}
	if len(f.repaymentRepo.Repayments) != 1 {
		t.Fatalf("repayments = %d, want 1", len(f.repaymentRepo.Repayments))
	}
	rep := f.repaymentRepo.Repayments[0]
	if !rep.Date.Equal(date) || rep.PostedBy != 1 {
		t.Errorf("repayment = %+v, want sheet date and officer", rep)
	}
	if got := f.loanRepo.Loans[loan.ID].Paid.String(); got != "75.00" {
		t.Errorf("loan paid = %s, want 75.00", got)
	}
}

func TestRecordCollection_UnknownSheet(t *testing.T) {
	f := newCollectionFixture(t)
	loan := seedLoan(f.loanRepo, 1)

	_, err := f.svc.RecordCollection(context.Background(), 1, 9, loan.ID, domain.MoneyFromInt(10))
	if !errors.Is(err, domain.ErrSheetNotFound) {
		t.Errorf("err = %v, want ErrSheetNotFound", err)
	}
}

func TestRecordCollection_RejectsNonPositiveAmount(t *testing.T) {
	f := newCollectionFixture(t)
	loan := seedLoan(f.loanRepo, 1)
	sheet, _ := f.svc.CreateSheet(context.Background(), 1, 1, time.Now().UTC())

	_, err := f.svc.RecordCollection(context.Background(), 1, sheet.ID, loan.ID, domain.ZeroMoney())
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestGetSheetDetail_TotalsItems(t *testing.T) {
	f := newCollectionFixture(t)
	loan := seedLoan(f.loanRepo, 1)
	sheet, _ := f.svc.CreateSheet(context.Background(), 1, 1, time.Now().UTC())

	if _, err := f.svc.RecordCollection(context.Background(), 1, sheet.ID, loan.ID, domain.MoneyFromInt(30)); err != nil {
		t.Fatalf("first item: %v", err)
	}
	if _, err := f.svc.RecordCollection(context.Background(), 1, sheet.ID, loan.ID, domain.MoneyFromInt(20)); err != nil {
		t.Fatalf("second item: %v", err)
	}

	detail, err := f.svc.GetSheetDetail(context.Background(), 1, sheet.ID)
	if err != nil {
		t.Fatalf("GetSheetDetail: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Errorf("items = %d, want 2", len(detail.Items))
	}
	if got := detail.Total.String(); got != "50.00" {
		t.Errorf("total = %s, want 50.00", got)
	}
}
