package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

func TestMoneyNumericRoundTrip(t *testing.T) {
	cases := []string{"0", "1234.56", "-45.10", "0.01", "999999999.99"}
	for _, c := range cases {
		d, err := decimal.NewFromString(c)
		if err != nil {
			t.Fatalf("decimal %q: %v", c, err)
		}
		num, err := moneyToNumeric(domain.NewMoney(d))
		if err != nil {
			t.Fatalf("moneyToNumeric(%s): %v", c, err)
		}
		back := numericToMoney(num)
		if !back.Decimal().Equal(d) {
			t.Errorf("round trip %s = %s", c, back.Decimal())
		}
	}
}

func TestNumericToMoney_InvalidIsZero(t *testing.T) {
	m := numericToMoney(pgtype.Numeric{})
	if !m.IsZero() {
		t.Errorf("invalid numeric = %s, want zero", m)
	}
}

func TestTxFrom_RejectsUnknownType(t *testing.T) {
	if _, err := txFrom("not a tx"); err == nil {
		t.Error("expected error for non-transaction value")
	}
}
