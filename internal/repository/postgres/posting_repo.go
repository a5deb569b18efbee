package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// PostingRepository implements domain.PostingRepository using PostgreSQL.
type PostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

var _ domain.PostingRepository = (*PostingRepository)(nil)

func scanBatch(row rowScanner) (*domain.PostingBatch, error) {
	var batch domain.PostingBatch
	if err := row.Scan(&batch.ID, &batch.OfficerID, &batch.Date, &batch.CreatedAt); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *PostingRepository) CreateBatch(ctx context.Context, batch *domain.PostingBatch) (*domain.PostingBatch, error) {
	query := `
		INSERT INTO posting_batches (officer_id, date)
		VALUES ($1, $2)
		RETURNING id, officer_id, date, created_at`

	return scanBatch(r.pool.QueryRow(ctx, query, batch.OfficerID, batch.Date))
}

func (r *PostingRepository) GetBatch(ctx context.Context, organizationID, id int64) (*domain.PostingBatch, error) {
	query := `SELECT b.id, b.officer_id, b.date, b.created_at
		FROM posting_batches b
		JOIN loan_officers o ON o.id = b.officer_id
		WHERE o.organization_id = $1 AND b.id = $2`

	batch, err := scanBatch(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return batch, nil
}

func (r *PostingRepository) ListBatches(ctx context.Context, organizationID int64) ([]*domain.PostingBatch, error) {
	query := `SELECT b.id, b.officer_id, b.date, b.created_at
		FROM posting_batches b
		JOIN loan_officers o ON o.id = b.officer_id
		WHERE o.organization_id = $1
		ORDER BY b.id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*domain.PostingBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

func (r *PostingRepository) CreateItem(ctx context.Context, item *domain.PostingItem) (*domain.PostingItem, error) {
	amount, err := moneyToNumeric(item.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	query := `
		INSERT INTO posting_items (batch_id, loan_id, amount, remarks)
		VALUES ($1, $2, $3, $4)
		RETURNING id, batch_id, loan_id, amount, remarks, created_at`

	var (
		created domain.PostingItem
		num     pgtype.Numeric
	)
	err = r.pool.QueryRow(ctx, query, item.BatchID, item.LoanID, amount, item.Remarks).
		Scan(&created.ID, &created.BatchID, &created.LoanID, &num, &created.Remarks, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	created.Amount = numericToMoney(num)
	return &created, nil
}

func (r *PostingRepository) ListItems(ctx context.Context, organizationID, batchID int64) ([]*domain.PostingItem, error) {
	if _, err := r.GetBatch(ctx, organizationID, batchID); err != nil {
		return nil, err
	}

	query := `SELECT id, batch_id, loan_id, amount, remarks, created_at
		FROM posting_items
		WHERE batch_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.PostingItem
	for rows.Next() {
		var (
			item domain.PostingItem
			num  pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.BatchID, &item.LoanID, &num, &item.Remarks, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Amount = numericToMoney(num)
		items = append(items, &item)
	}
	return items, rows.Err()
}
