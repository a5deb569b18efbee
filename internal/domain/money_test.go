package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_MulRate(t *testing.T) {
	// 1000 at 10% = 100.00
	principal := MoneyFromInt(1000)
	rate := decimal.NewFromInt(10)

	result := principal.MulRate(rate)
	expected := MoneyFromInt(100)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestMoney_MulRate_Rounds(t *testing.T) {
	// 333.33 at 7.5% = 24.99975 → 25.00
	principal, err := MoneyFromString("333.33")
	if err != nil {
		t.Fatalf("Failed to parse amount: %v", err)
	}
	rate := decimal.NewFromFloat(7.5)

	result := principal.MulRate(rate)
	expected, _ := MoneyFromString("25.00")

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestMoney_Round2_HalfToEven(t *testing.T) {
	// Exact half cents round to the even cent, matching decimal quantize.
	cases := []struct {
		in   string
		want string
	}{
		{"1000.125", "1000.12"},
		{"1000.135", "1000.14"},
		{"-1000.125", "-1000.12"},
		{"1000.1251", "1000.13"},
	}
	for _, tc := range cases {
		m, err := MoneyFromString(tc.in)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", tc.in, err)
		}
		if got := m.Round2().String(); got != tc.want {
			t.Errorf("Round2(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestMoney_Div_Rounds(t *testing.T) {
	// 100 / 3 = 33.33
	result := MoneyFromInt(100).Div(3)
	expected, _ := MoneyFromString("33.33")

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestMoney_Div_Zero(t *testing.T) {
	result := MoneyFromInt(100).Div(0)
	if !result.IsZero() {
		t.Errorf("Expected zero for division by zero, got %s", result)
	}
}

func TestMoney_String_TwoPlaces(t *testing.T) {
	m := MoneyFromInt(50)
	if m.String() != "50.00" {
		t.Errorf("Expected 50.00, got %s", m.String())
	}
}

func TestSumMoney_Empty(t *testing.T) {
	total := SumMoney(nil)
	if !total.IsZero() {
		t.Errorf("Expected zero sum for empty input, got %s", total)
	}
	if total.String() != "0.00" {
		t.Errorf("Expected 0.00, got %s", total.String())
	}
}

func TestSumMoney_AccumulatesBeforeRounding(t *testing.T) {
	// Three thirds of a unit must come back as 1.00, not 0.99.
	third := MoneyFromInt(1).Decimal().Div(decimal.NewFromInt(3))
	amounts := []Money{NewMoney(third), NewMoney(third), NewMoney(third)}

	total := SumMoney(amounts)
	if !total.Equal(MoneyFromInt(1)) {
		t.Errorf("Expected 1.00, got %s", total)
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, _ := MoneyFromString("1234.56")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"1234.56"` {
		t.Errorf(`Expected "1234.56", got %s`, data)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Expected %s after round trip, got %s", m, back)
	}
}

func TestMoney_Negative(t *testing.T) {
	m := MoneyFromInt(10).Sub(MoneyFromInt(25))
	if !m.IsNegative() {
		t.Error("Expected negative amount")
	}
	if m.String() != "-15.00" {
		t.Errorf("Expected -15.00, got %s", m.String())
	}
}
