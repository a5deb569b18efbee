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

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

var _ domain.ExpenseRepository = (*ExpenseRepository)(nil)

const expenseColumns = `id, organization_id, branch_id, vendor_id, category,
	description, amount, date, recorded_by, created_at`

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense domain.Expense
		amount  pgtype.Numeric
	)
	err := row.Scan(&expense.ID, &expense.OrganizationID, &expense.BranchID,
		&expense.VendorID, &expense.Category, &expense.Description,
		&amount, &expense.Date, &expense.RecordedBy, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.Amount = numericToMoney(amount)
	return &expense, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	amount, err := moneyToNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	query := `
		INSERT INTO expenses (organization_id, branch_id, vendor_id, category,
			description, amount, date, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + expenseColumns

	return scanExpense(r.pool.QueryRow(ctx, query,
		expense.OrganizationID, expense.BranchID, expense.VendorID, string(expense.Category),
		expense.Description, amount, expense.Date, expense.RecordedBy))
}

func (r *ExpenseRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
		WHERE organization_id = $1 AND id = $2`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (r *ExpenseRepository) ListByScope(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE organization_id = $1`
	args := []any{scope.OrganizationID}

	if scope.BranchID != nil {
		args = append(args, *scope.BranchID)
		query += fmt.Sprintf(" AND branch_id = $%d", len(args))
	}
	if dateRange.From != nil {
		args = append(args, *dateRange.From)
		query += fmt.Sprintf(" AND date::date >= $%d::date", len(args))
	}
	if dateRange.To != nil {
		args = append(args, *dateRange.To)
		query += fmt.Sprintf(" AND date::date <= $%d::date", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	amount, err := moneyToNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	query := `
		UPDATE expenses SET vendor_id = $3, category = $4, description = $5,
			amount = $6, date = $7
		WHERE organization_id = $1 AND id = $2
		RETURNING ` + expenseColumns

	updated, err := scanExpense(r.pool.QueryRow(ctx, query,
		expense.OrganizationID, expense.ID, expense.VendorID, string(expense.Category),
		expense.Description, amount, expense.Date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return updated, nil
}
