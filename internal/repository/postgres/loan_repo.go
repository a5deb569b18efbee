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

// LoanRepository implements domain.LoanRepository using PostgreSQL.
type LoanRepository struct {
	pool *pgxpool.Pool
}

func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

var _ domain.LoanRepository = (*LoanRepository)(nil)

const loanColumns = `id, organization_id, branch_id, borrower_id, officer_id,
	principal, interest_rate, fees, penalty, tenure_days, status,
	disbursed_date, maturity, paid, last_payment, created_at, updated_at`

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var (
		loan                           domain.Loan
		principal, fees, penalty, paid pgtype.Numeric
		rate                           pgtype.Numeric
		lastPayment                    pgtype.Timestamptz
	)
	err := row.Scan(
		&loan.ID, &loan.OrganizationID, &loan.BranchID, &loan.BorrowerID, &loan.OfficerID,
		&principal, &rate, &fees, &penalty, &loan.TenureDays, &loan.Status,
		&loan.DisbursedDate, &loan.Maturity, &paid, &lastPayment, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	loan.Principal = numericToMoney(principal)
	loan.InterestRate = numericToDecimal(rate)
	loan.Fees = numericToMoney(fees)
	loan.Penalty = numericToMoney(penalty)
	loan.Paid = numericToMoney(paid)
	if lastPayment.Valid {
		t := lastPayment.Time
		loan.LastPayment = &t
	}
	return &loan, nil
}

func loanArgs(loan *domain.Loan) ([]any, error) {
	principal, err := moneyToNumeric(loan.Principal)
	if err != nil {
		return nil, fmt.Errorf("invalid principal: %w", err)
	}
	rate, err := decimalToNumeric(loan.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("invalid interest rate: %w", err)
	}
	fees, err := moneyToNumeric(loan.Fees)
	if err != nil {
		return nil, fmt.Errorf("invalid fees: %w", err)
	}
	penalty, err := moneyToNumeric(loan.Penalty)
	if err != nil {
		return nil, fmt.Errorf("invalid penalty: %w", err)
	}
	paid, err := moneyToNumeric(loan.Paid)
	if err != nil {
		return nil, fmt.Errorf("invalid paid: %w", err)
	}
	return []any{
		loan.OrganizationID, loan.BranchID, loan.BorrowerID, loan.OfficerID,
		principal, rate, fees, penalty, loan.TenureDays, string(loan.Status),
		loan.DisbursedDate, loan.Maturity, paid, loan.LastPayment,
	}, nil
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	args, err := loanArgs(loan)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO loans (organization_id, branch_id, borrower_id, officer_id,
			principal, interest_rate, fees, penalty, tenure_days, status,
			disbursed_date, maturity, paid, last_payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + loanColumns

	return scanLoan(r.pool.QueryRow(ctx, query, args...))
}

func (r *LoanRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE organization_id = $1 AND id = $2`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetForUpdateTx locks the loan row for the duration of the transaction so a
// concurrent repayment post against the same loan waits its turn.
func (r *LoanRepository) GetForUpdateTx(tx interface{}, organizationID, id int64) (*domain.Loan, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE organization_id = $1 AND id = $2
		FOR UPDATE`

	loan, err := scanLoan(t.QueryRow(context.Background(), query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

func (r *LoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.Loan, error) {
	if scope.BranchID != nil {
		query := `SELECT ` + loanColumns + ` FROM loans
			WHERE organization_id = $1 AND branch_id = $2
			ORDER BY id`
		return r.queryLoans(ctx, query, scope.OrganizationID, *scope.BranchID)
	}

	query := `SELECT ` + loanColumns + ` FROM loans WHERE organization_id = $1 ORDER BY id`
	return r.queryLoans(ctx, query, scope.OrganizationID)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, scope domain.Scope, status domain.LoanStatus) ([]*domain.Loan, error) {
	if scope.BranchID != nil {
		query := `SELECT ` + loanColumns + ` FROM loans
			WHERE organization_id = $1 AND branch_id = $2 AND status = $3
			ORDER BY id`
		return r.queryLoans(ctx, query, scope.OrganizationID, *scope.BranchID, string(status))
	}

	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE organization_id = $1 AND status = $2
		ORDER BY id`
	return r.queryLoans(ctx, query, scope.OrganizationID, string(status))
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE organization_id = $1 AND borrower_id = $2
		ORDER BY id`
	return r.queryLoans(ctx, query, organizationID, borrowerID)
}

func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	args, err := loanArgs(loan)
	if err != nil {
		return nil, err
	}
	args = append(args, loan.ID)

	query := `
		UPDATE loans SET
			branch_id = $2, borrower_id = $3, officer_id = $4,
			principal = $5, interest_rate = $6, fees = $7, penalty = $8,
			tenure_days = $9, status = $10, disbursed_date = $11, maturity = $12,
			paid = $13, last_payment = $14, updated_at = now()
		WHERE organization_id = $1 AND id = $15
		RETURNING ` + loanColumns

	updated, err := scanLoan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UpdatePaymentTx writes the ledger-derived fields inside the posting
// transaction.
func (r *LoanRepository) UpdatePaymentTx(tx interface{}, loan *domain.Loan) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}

	paid, err := moneyToNumeric(loan.Paid)
	if err != nil {
		return fmt.Errorf("invalid paid: %w", err)
	}

	query := `
		UPDATE loans SET paid = $3, status = $4, last_payment = $5, updated_at = now()
		WHERE organization_id = $1 AND id = $2`

	tag, err := t.Exec(context.Background(), query,
		loan.OrganizationID, loan.ID, paid, string(loan.Status), loan.LastPayment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
