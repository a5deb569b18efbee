// Package postgres implements the domain repositories over pgx. Queries are
// hand-written SQL; every statement filters by organization so rows can never
// leak across tenants.
package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// rowScanner is the piece of pgx.Row and pgx.Rows the scan helpers need.
type rowScanner interface {
	Scan(dest ...any) error
}

// txFrom unwraps the opaque transaction handle the service layer carries.
func txFrom(tx interface{}) (pgx.Tx, error) {
	t, ok := tx.(pgx.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return t, nil
}

func decimalToNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func moneyToNumeric(m domain.Money) (pgtype.Numeric, error) {
	return decimalToNumeric(m.Decimal())
}

func numericToMoney(n pgtype.Numeric) domain.Money {
	return domain.NewMoney(numericToDecimal(n))
}
