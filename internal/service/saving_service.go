package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/websocket"
)

// SavingService manages borrower savings accounts.
//
// Opening balance caveat: a new account opens with the borrower's combined
// ledger balance across all their existing accounts plus the initial deposit.
// Existing data in the field depends on this carry-over, so it stays.
type SavingService struct {
	db           TxBeginner
	savingRepo   domain.SavingRepository
	borrowerRepo domain.BorrowerRepository
	publisher    websocket.EventPublisher
}

func NewSavingService(
	db TxBeginner,
	savingRepo domain.SavingRepository,
	borrowerRepo domain.BorrowerRepository,
	publisher websocket.EventPublisher,
) *SavingService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &SavingService{
		db:           db,
		savingRepo:   savingRepo,
		borrowerRepo: borrowerRepo,
		publisher:    publisher,
	}
}

// OpenAccountInput carries the fields for a new savings account.
type OpenAccountInput struct {
	BorrowerID    int64
	Name          string
	AccountNumber string
	Product       string
	Deposit       domain.Money
}

// OpenAccount creates a savings account seeded with the borrower's combined
// existing ledger plus the initial deposit.
func (s *SavingService) OpenAccount(ctx context.Context, organizationID int64, input OpenAccountInput) (*domain.Saving, error) {
	if input.Deposit.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.borrowerRepo.GetByID(ctx, organizationID, input.BorrowerID); err != nil {
		return nil, err
	}

	existing, err := s.savingRepo.ListByBorrower(ctx, organizationID, input.BorrowerID)
	if err != nil {
		return nil, err
	}
	opening := domain.SumLedger(existing).Add(input.Deposit).Round2()

	now := time.Now().UTC()
	saving := &domain.Saving{
		OrganizationID: organizationID,
		BorrowerID:     input.BorrowerID,
		Name:           input.Name,
		AccountNumber:  input.AccountNumber,
		Product:        input.Product,
		LedgerBalance:  opening,
		Status:         domain.SavingStatusActive,
		CreatedAt:      now,
	}
	if !input.Deposit.IsZero() {
		saving.LastTransaction = &now
	}
	if err := saving.Validate(); err != nil {
		return nil, err
	}

	created, err := s.savingRepo.Create(ctx, saving)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organizationID, websocket.SavingCreated(created))
	return created, nil
}

// Deposit adds to an account's ledger balance. The account row is locked for
// the duration so concurrent deposits serialize.
func (s *SavingService) Deposit(ctx context.Context, organizationID, savingID int64, amount domain.Money, date time.Time) (*domain.Saving, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saving, err := s.savingRepo.GetForUpdateTx(tx, organizationID, savingID)
	if err != nil {
		return nil, err
	}

	saving.LedgerBalance = saving.LedgerBalance.Add(amount).Round2()
	saving.LastTransaction = &date

	if err := s.savingRepo.UpdateBalanceTx(tx, saving); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.publisher.Publish(organizationID, websocket.SavingDeposited(saving))
	return saving, nil
}

func (s *SavingService) GetAccount(ctx context.Context, organizationID, id int64) (*domain.Saving, error) {
	return s.savingRepo.GetByID(ctx, organizationID, id)
}

func (s *SavingService) GetAccounts(ctx context.Context, organizationID int64) ([]*domain.Saving, error) {
	return s.savingRepo.ListByOrganization(ctx, organizationID)
}

func (s *SavingService) GetAccountsByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*domain.Saving, error) {
	if _, err := s.borrowerRepo.GetByID(ctx, organizationID, borrowerID); err != nil {
		return nil, err
	}
	return s.savingRepo.ListByBorrower(ctx, organizationID, borrowerID)
}
