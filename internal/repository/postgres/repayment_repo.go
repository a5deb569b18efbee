package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// RepaymentRepository implements domain.RepaymentRepository using PostgreSQL.
type RepaymentRepository struct {
	pool *pgxpool.Pool
}

func NewRepaymentRepository(pool *pgxpool.Pool) *RepaymentRepository {
	return &RepaymentRepository{pool: pool}
}

var _ domain.RepaymentRepository = (*RepaymentRepository)(nil)

const repaymentColumns = `id, loan_id, amount, date, posted_by, created_at`

func scanRepayment(row rowScanner) (*domain.Repayment, error) {
	var (
		rep    domain.Repayment
		amount pgtype.Numeric
	)
	if err := row.Scan(&rep.ID, &rep.LoanID, &amount, &rep.Date, &rep.PostedBy, &rep.CreatedAt); err != nil {
		return nil, err
	}
	rep.Amount = numericToMoney(amount)
	return &rep, nil
}

func (r *RepaymentRepository) CreateTx(tx interface{}, rep *domain.Repayment) (*domain.Repayment, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	amount, err := moneyToNumeric(rep.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	query := `
		INSERT INTO repayments (loan_id, amount, date, posted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + repaymentColumns

	return scanRepayment(t.QueryRow(context.Background(), query, rep.LoanID, amount, rep.Date, rep.PostedBy))
}

// SumAmountByLoanTx totals the loan's full repayment ledger inside the
// posting transaction.
func (r *RepaymentRepository) SumAmountByLoanTx(tx interface{}, loanID int64) (domain.Money, error) {
	t, err := txFrom(tx)
	if err != nil {
		return domain.ZeroMoney(), err
	}

	var total pgtype.Numeric
	query := `SELECT COALESCE(SUM(amount), 0) FROM repayments WHERE loan_id = $1`
	if err := t.QueryRow(context.Background(), query, loanID).Scan(&total); err != nil {
		return domain.ZeroMoney(), err
	}
	return numericToMoney(total).Round2(), nil
}

func (r *RepaymentRepository) queryRepayments(ctx context.Context, query string, args ...any) ([]*domain.Repayment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []*domain.Repayment
	for rows.Next() {
		rep, err := scanRepayment(rows)
		if err != nil {
			return nil, err
		}
		reps = append(reps, rep)
	}
	return reps, rows.Err()
}

func (r *RepaymentRepository) ListByLoan(ctx context.Context, organizationID, loanID int64) ([]*domain.Repayment, error) {
	// verify the loan belongs to the organization before listing
	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM loans WHERE organization_id = $1 AND id = $2)`
	if err := r.pool.QueryRow(ctx, check, organizationID, loanID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrLoanNotFound
	}

	query := `SELECT ` + repaymentColumns + ` FROM repayments
		WHERE loan_id = $1
		ORDER BY date, id`
	return r.queryRepayments(ctx, query, loanID)
}

func (r *RepaymentRepository) ListByScope(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.Repayment, error) {
	query := `SELECT r.id, r.loan_id, r.amount, r.date, r.posted_by, r.created_at
		FROM repayments r
		JOIN loans l ON l.id = r.loan_id
		WHERE l.organization_id = $1`
	args := []any{scope.OrganizationID}

	if scope.BranchID != nil {
		args = append(args, *scope.BranchID)
		query += fmt.Sprintf(" AND l.branch_id = $%d", len(args))
	}
	if dateRange.From != nil {
		args = append(args, *dateRange.From)
		query += fmt.Sprintf(" AND r.date::date >= $%d::date", len(args))
	}
	if dateRange.To != nil {
		args = append(args, *dateRange.To)
		query += fmt.Sprintf(" AND r.date::date <= $%d::date", len(args))
	}
	query += " ORDER BY r.date DESC, r.id DESC"

	return r.queryRepayments(ctx, query, args...)
}
