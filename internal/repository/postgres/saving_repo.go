package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// SavingRepository implements domain.SavingRepository using PostgreSQL.
type SavingRepository struct {
	pool *pgxpool.Pool
}

func NewSavingRepository(pool *pgxpool.Pool) *SavingRepository {
	return &SavingRepository{pool: pool}
}

var _ domain.SavingRepository = (*SavingRepository)(nil)

const savingColumns = `id, organization_id, borrower_id, name, account_number,
	product, ledger_balance, last_transaction, status, created_at`

func scanSaving(row rowScanner) (*domain.Saving, error) {
	var (
		saving          domain.Saving
		balance         pgtype.Numeric
		lastTransaction pgtype.Timestamptz
	)
	err := row.Scan(&saving.ID, &saving.OrganizationID, &saving.BorrowerID,
		&saving.Name, &saving.AccountNumber, &saving.Product,
		&balance, &lastTransaction, &saving.Status, &saving.CreatedAt)
	if err != nil {
		return nil, err
	}
	saving.LedgerBalance = numericToMoney(balance)
	if lastTransaction.Valid {
		t := lastTransaction.Time
		saving.LastTransaction = &t
	}
	return &saving, nil
}

func (r *SavingRepository) Create(ctx context.Context, saving *domain.Saving) (*domain.Saving, error) {
	balance, err := moneyToNumeric(saving.LedgerBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger balance: %w", err)
	}

	query := `
		INSERT INTO savings (organization_id, borrower_id, name, account_number,
			product, ledger_balance, last_transaction, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + savingColumns

	created, err := scanSaving(r.pool.QueryRow(ctx, query,
		saving.OrganizationID, saving.BorrowerID, saving.Name, saving.AccountNumber,
		saving.Product, balance, saving.LastTransaction, string(saving.Status)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrSavingAccountExists
		}
		return nil, err
	}
	return created, nil
}

func (r *SavingRepository) GetByID(ctx context.Context, organizationID, id int64) (*domain.Saving, error) {
	query := `SELECT ` + savingColumns + ` FROM savings
		WHERE organization_id = $1 AND id = $2`

	saving, err := scanSaving(r.pool.QueryRow(ctx, query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSavingNotFound
		}
		return nil, err
	}
	return saving, nil
}

// GetForUpdateTx locks the account row so concurrent deposits serialize.
func (r *SavingRepository) GetForUpdateTx(tx interface{}, organizationID, id int64) (*domain.Saving, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + savingColumns + ` FROM savings
		WHERE organization_id = $1 AND id = $2
		FOR UPDATE`

	saving, err := scanSaving(t.QueryRow(context.Background(), query, organizationID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSavingNotFound
		}
		return nil, err
	}
	return saving, nil
}

func (r *SavingRepository) querySavings(ctx context.Context, query string, args ...any) ([]*domain.Saving, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var savings []*domain.Saving
	for rows.Next() {
		saving, err := scanSaving(rows)
		if err != nil {
			return nil, err
		}
		savings = append(savings, saving)
	}
	return savings, rows.Err()
}

func (r *SavingRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*domain.Saving, error) {
	query := `SELECT ` + savingColumns + ` FROM savings
		WHERE organization_id = $1
		ORDER BY id`
	return r.querySavings(ctx, query, organizationID)
}

func (r *SavingRepository) ListByBorrower(ctx context.Context, organizationID, borrowerID int64) ([]*domain.Saving, error) {
	query := `SELECT ` + savingColumns + ` FROM savings
		WHERE organization_id = $1 AND borrower_id = $2
		ORDER BY id`
	return r.querySavings(ctx, query, organizationID, borrowerID)
}

func (r *SavingRepository) UpdateBalanceTx(tx interface{}, saving *domain.Saving) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}

	balance, err := moneyToNumeric(saving.LedgerBalance)
	if err != nil {
		return fmt.Errorf("invalid ledger balance: %w", err)
	}

	query := `
		UPDATE savings SET ledger_balance = $3, last_transaction = $4
		WHERE organization_id = $1 AND id = $2`

	tag, err := t.Exec(context.Background(), query,
		saving.OrganizationID, saving.ID, balance, saving.LastTransaction)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingNotFound
	}
	return nil
}
