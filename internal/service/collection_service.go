package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/websocket"
)

// CollectionService manages field collection sheets. Recording an item on a
// sheet posts a matching repayment and resyncs the loan in the same
// transaction, so the sheet and the ledger cannot drift apart.
type CollectionService struct {
	db             TxBeginner
	collectionRepo domain.CollectionRepository
	loanRepo       domain.LoanRepository
	repaymentRepo  domain.RepaymentRepository
	officerRepo    domain.OfficerRepository
	publisher      websocket.EventPublisher
}

func NewCollectionService(
	db TxBeginner,
	collectionRepo domain.CollectionRepository,
	loanRepo domain.LoanRepository,
	repaymentRepo domain.RepaymentRepository,
	officerRepo domain.OfficerRepository,
	publisher websocket.EventPublisher,
) *CollectionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &CollectionService{
		db:             db,
		collectionRepo: collectionRepo,
		loanRepo:       loanRepo,
		repaymentRepo:  repaymentRepo,
		officerRepo:    officerRepo,
		publisher:      publisher,
	}
}

// CreateSheet opens a collection sheet for an officer on a given day.
func (s *CollectionService) CreateSheet(ctx context.Context, organizationID, officerID int64, date time.Time) (*domain.CollectionSheet, error) {
	if _, err := s.officerRepo.GetByID(ctx, organizationID, officerID); err != nil {
		return nil, err
	}

	sheet := &domain.CollectionSheet{
		OfficerID: officerID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	return s.collectionRepo.CreateSheet(ctx, sheet)
}

// RecordCollection adds an item to a sheet and posts the matching repayment.
// Item, repayment, and loan resync commit together or not at all.
func (s *CollectionService) RecordCollection(ctx context.Context, organizationID, sheetID, loanID int64, amount domain.Money) (*domain.CollectionItem, error) {
	sheet, err := s.collectionRepo.GetSheet(ctx, organizationID, sheetID)
	if err != nil {
		return nil, err
	}

	item := &domain.CollectionItem{
		SheetID:   sheetID,
		LoanID:    loanID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loan, err := s.loanRepo.GetForUpdateTx(tx, organizationID, loanID)
	if err != nil {
		return nil, err
	}

	created, err := s.collectionRepo.CreateItemTx(tx, item)
	if err != nil {
		return nil, fmt.Errorf("create collection item: %w", err)
	}

	rep := &domain.Repayment{
		LoanID:    loanID,
		Amount:    amount,
		Date:      sheet.Date,
		PostedBy:  sheet.OfficerID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.repaymentRepo.CreateTx(tx, rep); err != nil {
		return nil, fmt.Errorf("create repayment: %w", err)
	}

	total, err := s.repaymentRepo.SumAmountByLoanTx(tx, loan.ID)
	if err != nil {
		return nil, fmt.Errorf("sum repayments: %w", err)
	}

	paymentDate := sheet.Date
	loan.Paid = total
	loan.LastPayment = &paymentDate
	loan.ApplyStatusRule()

	if err := s.loanRepo.UpdatePaymentTx(tx, loan); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.publisher.Publish(organizationID, websocket.CollectionPosted(created))
	s.publisher.Publish(organizationID, websocket.LoanUpdated(loan))
	return created, nil
}

func (s *CollectionService) GetSheet(ctx context.Context, organizationID, id int64) (*domain.CollectionSheet, error) {
	return s.collectionRepo.GetSheet(ctx, organizationID, id)
}

func (s *CollectionService) GetSheets(ctx context.Context, organizationID int64) ([]*domain.CollectionSheet, error) {
	return s.collectionRepo.ListSheets(ctx, organizationID)
}

// SheetDetail is a collection sheet with its items and summed total.
type SheetDetail struct {
	Sheet *domain.CollectionSheet  `json:"sheet"`
	Items []*domain.CollectionItem `json:"items"`
	Total domain.Money             `json:"total"`
}

func (s *CollectionService) GetSheetDetail(ctx context.Context, organizationID, id int64) (*SheetDetail, error) {
	sheet, err := s.collectionRepo.GetSheet(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.collectionRepo.ListItemsBySheet(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	amounts := make([]domain.Money, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.Amount)
	}

	return &SheetDetail{Sheet: sheet, Items: items, Total: domain.SumMoney(amounts)}, nil
}
