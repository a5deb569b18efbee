package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/testutil"
)

func newSavingService(t *testing.T) (*SavingService, *testutil.MockSavingRepository, *testutil.MockBorrowerRepository, *testutil.MockTxBeginner) {
	t.Helper()
	savingRepo := testutil.NewMockSavingRepository()
	borrowerRepo := testutil.NewMockBorrowerRepository()
	db := testutil.NewMockTxBeginner()
	svc := NewSavingService(db, savingRepo, borrowerRepo, nil)
	return svc, savingRepo, borrowerRepo, db
}

func seedSavingBorrower(borrowerRepo *testutil.MockBorrowerRepository) {
	borrowerRepo.AddBorrower(&domain.Borrower{
		ID: 1, OrganizationID: 1, FullName: "Grace Auma",
		UniqueID: "b-1", Status: domain.BorrowerStatusActive,
	})
}

func TestOpenAccount_SeedsFromCombinedLedger(t *testing.T) {
	svc, savingRepo, borrowerRepo, _ := newSavingService(t)
	seedSavingBorrower(borrowerRepo)

	// borrower already holds two accounts
	savingRepo.AddSaving(&domain.Saving{
		ID: 1, OrganizationID: 1, BorrowerID: 1, Name: "main", AccountNumber: "SA-001",
		LedgerBalance: domain.MoneyFromInt(100), Status: domain.SavingStatusActive,
	})
	savingRepo.AddSaving(&domain.Saving{
		ID: 2, OrganizationID: 1, BorrowerID: 1, Name: "school", AccountNumber: "SA-002",
		LedgerBalance: domain.MoneyFromInt(50), Status: domain.SavingStatusActive,
	})

	created, err := svc.OpenAccount(context.Background(), 1, OpenAccountInput{
		BorrowerID: 1, Name: "festive", AccountNumber: "SA-003",
		Deposit: domain.MoneyFromInt(25),
	})
	if err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}

	// combined existing ledger (150) carries into the new account's opening balance
	if got := created.LedgerBalance.String(); got != "175.00" {
		t.Errorf("opening balance = %s, want 175.00", got)
	}
	if created.Status != domain.SavingStatusActive {
		t.Errorf("status = %s, want Active", created.Status)
	}
}

func TestOpenAccount_FirstAccountStartsFromDeposit(t *testing.T) {
	svc, _, borrowerRepo, _ := newSavingService(t)
	seedSavingBorrower(borrowerRepo)

	created, err := svc.OpenAccount(context.Background(), 1, OpenAccountInput{
		BorrowerID: 1, Name: "main", AccountNumber: "SA-001",
		Deposit: domain.MoneyFromInt(80),
	})
	if err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}
	if got := created.LedgerBalance.String(); got != "80.00" {
		t.Errorf("opening balance = %s, want 80.00", got)
	}
}

func TestOpenAccount_DuplicateAccountNumber(t *testing.T) {
	svc, savingRepo, borrowerRepo, _ := newSavingService(t)
	seedSavingBorrower(borrowerRepo)
	savingRepo.AddSaving(&domain.Saving{
		ID: 1, OrganizationID: 1, BorrowerID: 1, Name: "main", AccountNumber: "SA-001",
		LedgerBalance: domain.ZeroMoney(), Status: domain.SavingStatusActive,
	})

	_, err := svc.OpenAccount(context.Background(), 1, OpenAccountInput{
		BorrowerID: 1, Name: "other", AccountNumber: "SA-001",
	})
	if !errors.Is(err, domain.ErrSavingAccountExists) {
		t.Errorf("err = %v, want ErrSavingAccountExists", err)
	}
}

func TestDeposit_AccumulatesAndStampsDate(t *testing.T) {
	svc, savingRepo, _, db := newSavingService(t)
	savingRepo.AddSaving(&domain.Saving{
		ID: 1, OrganizationID: 1, BorrowerID: 1, Name: "main", AccountNumber: "SA-001",
		LedgerBalance: domain.MoneyFromInt(100), Status: domain.SavingStatusActive,
	})

	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Deposit(context.Background(), 1, 1, domain.MoneyFromInt(45), date)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	if got := updated.LedgerBalance.String(); got != "145.00" {
		t.Errorf("balance = %s, want 145.00", got)
	}
	if updated.LastTransaction == nil || !updated.LastTransaction.Equal(date) {
		t.Errorf("last transaction = %v, want %v", updated.LastTransaction, date)
	}
	if !db.Last.Committed {
		t.Error("transaction was not committed")
	}
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	svc, savingRepo, _, _ := newSavingService(t)
	savingRepo.AddSaving(&domain.Saving{
		ID: 1, OrganizationID: 1, BorrowerID: 1, Name: "main", AccountNumber: "SA-001",
		LedgerBalance: domain.MoneyFromInt(100), Status: domain.SavingStatusActive,
	})

	_, err := svc.Deposit(context.Background(), 1, 1, domain.ZeroMoney(), time.Now().UTC())
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestDeposit_UnknownAccount(t *testing.T) {
	svc, _, _, db := newSavingService(t)

	_, err := svc.Deposit(context.Background(), 1, 9, domain.MoneyFromInt(10), time.Now().UTC())
	if !errors.Is(err, domain.ErrSavingNotFound) {
		t.Fatalf("err = %v, want ErrSavingNotFound", err)
	}
	if db.Last == nil || !db.Last.RolledBack {
		t.Error("transaction was not rolled back")
	}
}
