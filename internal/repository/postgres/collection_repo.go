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

// CollectionRepository implements domain.CollectionRepository using
// PostgreSQL. Sheets are scoped through their officer's organization.
type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

var _ domain.CollectionRepository = (*CollectionRepository)(nil)

func scanSheet(row rowScanner) (*domain.CollectionSheet, error) {
	var sheet domain.CollectionSheet
	if err := row.Scan(&sheet.ID, &sheet.OfficerID, &sheet.Date, &sheet.CreatedAt); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func scanItem(row rowScanner) (*domain.CollectionItem, error) {
	var (
		item   domain.CollectionItem
		amount pgtype.Numeric
	)
	if err := row.Scan(&item.ID, &item.SheetID, &item.LoanID, &amount, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Amount = numericToMoney(amount)
	return &item, nil
}

func (r *CollectionRepository) CreateSheet(ctx context.Context, sheet *domain.CollectionSheet) (*domain.CollectionSheet, error) {
	query := `
		INSERT INTO collection_sheets (officer_id, date)
		VALUES ($1, $2)
		RETURNING id, officer_id, date, created_at`

	return scanSheet(r.pool.QueryRow(ctx, query, sheet.OfficerID, sheet.Date))
}

func (r *CollectionRepository) GetSheet(ctx context.Context, organizationID, id int64) (*domain.CollectionSheet, error) {
	query := `SELECT s.id, s.officer_id, s.date, s.created_at
		FROM collection_sheets s
		JOIN loan_officers o ON o.id = s.officer_id
		WHERE o.organization_id = $1 AND s.id = $2`

	sheet, err := scanSheet(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSheetNotFound
		}
		return nil, err
	}
	return sheet, nil
}

func (r *CollectionRepository) ListSheets(ctx context.Context, organizationID int64) ([]*domain.CollectionSheet, error) {
	query := `SELECT s.id, s.officer_id, s.date, s.created_at
		FROM collection_sheets s
		JOIN loan_officers o ON o.id = s.officer_id
		WHERE o.organization_id = $1
		ORDER BY s.id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []*domain.CollectionSheet
	for rows.Next() {
		sheet, err := scanSheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, rows.Err()
}

func (r *CollectionRepository) CreateItemTx(tx interface{}, item *domain.CollectionItem) (*domain.CollectionItem, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	amount, err := moneyToNumeric(item.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	query := `
		INSERT INTO collection_items (sheet_id, loan_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, sheet_id, loan_id, amount, created_at`

	return scanItem(t.QueryRow(context.Background(), query, item.SheetID, item.LoanID, amount))
}

func (r *CollectionRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.CollectionItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CollectionItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CollectionRepository) ListItemsBySheet(ctx context.Context, organizationID, sheetID int64) ([]*domain.CollectionItem, error) {
	if _, err := r.GetSheet(ctx, organizationID, sheetID); err != nil {
		return nil, err
	}

	query := `SELECT id, sheet_id, loan_id, amount, created_at
		FROM collection_items
		WHERE sheet_id = $1
		ORDER BY id`
	return r.queryItems(ctx, query, sheetID)
}

func (r *CollectionRepository) ListItemsByScope(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.CollectionItem, error) {
	query := `SELECT i.id, i.sheet_id, i.loan_id, i.amount, i.created_at
		FROM collection_items i
		JOIN collection_sheets s ON s.id = i.sheet_id
		JOIN loans l ON l.id = i.loan_id
		WHERE l.organization_id = $1`
	args := []any{scope.OrganizationID}

	if scope.BranchID != nil {
		args = append(args, *scope.BranchID)
		query += fmt.Sprintf(" AND l.branch_id = $%d", len(args))
	}
	if dateRange.From != nil {
		args = append(args, *dateRange.From)
		query += fmt.Sprintf(" AND s.date::date >= $%d::date", len(args))
	}
	if dateRange.To != nil {
		args = append(args, *dateRange.To)
		query += fmt.Sprintf(" AND s.date::date <= $%d::date", len(args))
	}
	query += " ORDER BY i.id"

	return r.queryItems(ctx, query, args...)
}
