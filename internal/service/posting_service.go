package service

import (
	"context"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// PostingService manages adjustment batches. Batch totals are always derived
// from the items, never stored.
type PostingService struct {
	postingRepo domain.PostingRepository
	loanRepo    domain.LoanRepository
	officerRepo domain.OfficerRepository
}

func NewPostingService(
	postingRepo domain.PostingRepository,
	loanRepo domain.LoanRepository,
	officerRepo domain.OfficerRepository,
) *PostingService {
	return &PostingService{postingRepo: postingRepo, loanRepo: loanRepo, officerRepo: officerRepo}
}

func (s *PostingService) CreateBatch(ctx context.Context, organizationID, officerID int64, date time.Time) (*domain.PostingBatch, error) {
	if _, err := s.officerRepo.GetByID(ctx, organizationID, officerID); err != nil {
		return nil, err
	}

	batch := &domain.PostingBatch{
		OfficerID: officerID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	return s.postingRepo.CreateBatch(ctx, batch)
}

// AddItem records an adjustment line against a loan. Amounts may be negative;
// postings correct the ledger in either direction.
func (s *PostingService) AddItem(ctx context.Context, organizationID, batchID, loanID int64, amount domain.Money, remarks *string) (*domain.PostingItem, error) {
	if _, err := s.postingRepo.GetBatch(ctx, organizationID, batchID); err != nil {
		return nil, err
	}
	if _, err := s.loanRepo.GetByID(ctx, organizationID, loanID); err != nil {
		return nil, err
	}

	item := &domain.PostingItem{
		BatchID:   batchID,
		LoanID:    loanID,
		Amount:    amount,
		Remarks:   remarks,
		CreatedAt: time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return s.postingRepo.CreateItem(ctx, item)
}

func (s *PostingService) GetBatches(ctx context.Context, organizationID int64) ([]*domain.PostingBatch, error) {
	return s.postingRepo.ListBatches(ctx, organizationID)
}

// BatchDetail is a posting batch with its items and derived total.
type BatchDetail struct {
	Batch *domain.PostingBatch  `json:"batch"`
	Items []*domain.PostingItem `json:"items"`
	Total domain.Money          `json:"total"`
}

func (s *PostingService) GetBatchDetail(ctx context.Context, organizationID, id int64) (*BatchDetail, error) {
	batch, err := s.postingRepo.GetBatch(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.postingRepo.ListItems(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	return &BatchDetail{Batch: batch, Items: items, Total: domain.BatchTotal(items)}, nil
}
