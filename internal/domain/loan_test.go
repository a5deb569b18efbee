package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testLoan() *Loan {
	return &Loan{
		ID:             1,
		OrganizationID: 1,
		Principal:      MoneyFromInt(1000),
		InterestRate:   decimal.NewFromInt(10),
		Fees:           ZeroMoney(),
		Penalty:        ZeroMoney(),
		TenureDays:     30,
		Status:         LoanStatusActive,
		DisbursedDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Paid:           ZeroMoney(),
	}
}

func TestLoan_Interest(t *testing.T) {
	loan := testLoan()

	interest := loan.Interest()
	if !interest.Equal(MoneyFromInt(100)) {
		t.Errorf("Expected interest 100.00, got %s", interest)
	}
}

func TestLoan_Interest_Rounds(t *testing.T) {
	loan := testLoan()
	loan.Principal, _ = MoneyFromString("333.33")
	loan.InterestRate = decimal.NewFromFloat(7.5)

	// 333.33 * 0.075 = 24.99975 → 25.00
	expected, _ := MoneyFromString("25.00")
	if !loan.Interest().Equal(expected) {
		t.Errorf("Expected interest %s, got %s", expected, loan.Interest())
	}
}

func TestLoan_TotalDue(t *testing.T) {
	loan := testLoan()
	loan.Fees = MoneyFromInt(20)
	loan.Penalty = MoneyFromInt(5)

	// 1000 + 100 + 20 + 5 = 1125
	if !loan.TotalDue().Equal(MoneyFromInt(1125)) {
		t.Errorf("Expected total due 1125.00, got %s", loan.TotalDue())
	}
}

func TestLoan_OutstandingBalance(t *testing.T) {
	loan := testLoan()
	loan.Paid = MoneyFromInt(400)

	// 1100 - 400 = 700
	if !loan.OutstandingBalance().Equal(MoneyFromInt(700)) {
		t.Errorf("Expected balance 700.00, got %s", loan.OutstandingBalance())
	}
}

func TestLoan_OutstandingBalance_Overpaid(t *testing.T) {
	loan := testLoan()
	loan.Paid = MoneyFromInt(1200)

	// Overpayment is not clamped; callers decide how to treat the credit.
	if !loan.OutstandingBalance().Equal(MoneyFromInt(-100)) {
		t.Errorf("Expected balance -100.00, got %s", loan.OutstandingBalance())
	}
}

func TestLoan_MaturityDate(t *testing.T) {
	loan := testLoan()

	expected := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if !loan.MaturityDate().Equal(expected) {
		t.Errorf("Expected maturity %s, got %s", expected, loan.MaturityDate())
	}
}

func TestLoan_Normalize_RecomputesMaturity(t *testing.T) {
	loan := testLoan()
	loan.Normalize()

	expected := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if !loan.Maturity.Equal(expected) {
		t.Errorf("Expected maturity %s, got %s", expected, loan.Maturity)
	}

	// Edit tenure and renormalize
	loan.TenureDays = 60
	loan.Normalize()
	expected = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	if !loan.Maturity.Equal(expected) {
		t.Errorf("Expected recomputed maturity %s, got %s", expected, loan.Maturity)
	}
}

func TestLoan_StatusRule_ClosesWhenFullyPaid(t *testing.T) {
	loan := testLoan()
	loan.Paid = MoneyFromInt(1100)

	loan.ApplyStatusRule()
	if loan.Status != LoanStatusClosed {
		t.Errorf("Expected status Closed, got %s", loan.Status)
	}
	if !loan.OutstandingBalance().IsZero() {
		t.Errorf("Expected zero balance, got %s", loan.OutstandingBalance())
	}
}

func TestLoan_StatusRule_NoAutoReopen(t *testing.T) {
	loan := testLoan()
	loan.Paid = MoneyFromInt(1100)
	loan.ApplyStatusRule()

	// Reduce paid below total due; closed stays closed.
	loan.Paid = MoneyFromInt(500)
	loan.ApplyStatusRule()
	if loan.Status != LoanStatusClosed {
		t.Errorf("Expected status to remain Closed, got %s", loan.Status)
	}
}

func TestLoan_StatusRule_LeavesUnderpaidAlone(t *testing.T) {
	loan := testLoan()
	loan.Status = LoanStatusOverdue
	loan.Paid = MoneyFromInt(200)

	loan.ApplyStatusRule()
	if loan.Status != LoanStatusOverdue {
		t.Errorf("Expected status Overdue, got %s", loan.Status)
	}
}

func TestLoanStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    LoanStatus
		to      LoanStatus
		allowed bool
	}{
		{LoanStatusActive, LoanStatusOverdue, true},
		{LoanStatusActive, LoanStatusPAR30, true},
		{LoanStatusActive, LoanStatusClosed, true},
		{LoanStatusOverdue, LoanStatusActive, true},
		{LoanStatusPAR30, LoanStatusClosed, true},
		{LoanStatusClosed, LoanStatusActive, false},
		{LoanStatusClosed, LoanStatusOverdue, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestLoan_Validate(t *testing.T) {
	loan := testLoan()
	if err := loan.Validate(); err != nil {
		t.Errorf("Expected valid loan, got %v", err)
	}

	bad := testLoan()
	bad.Principal = ZeroMoney()
	if err := bad.Validate(); err != ErrLoanPrincipalInvalid {
		t.Errorf("Expected ErrLoanPrincipalInvalid, got %v", err)
	}

	bad = testLoan()
	bad.InterestRate = decimal.NewFromInt(-1)
	if err := bad.Validate(); err != ErrLoanRateInvalid {
		t.Errorf("Expected ErrLoanRateInvalid, got %v", err)
	}

	bad = testLoan()
	bad.TenureDays = 0
	if err := bad.Validate(); err != ErrLoanTenureInvalid {
		t.Errorf("Expected ErrLoanTenureInvalid, got %v", err)
	}
}

func TestComputeBorrowerTotals(t *testing.T) {
	a := testLoan()
	a.Paid = MoneyFromInt(300)
	b := testLoan()
	b.ID = 2
	b.Principal = MoneyFromInt(500)
	b.InterestRate = decimal.NewFromInt(5)
	b.Paid = MoneyFromInt(100)

	totals := ComputeBorrowerTotals([]*Loan{a, b})
	if !totals.TotalPaid.Equal(MoneyFromInt(400)) {
		t.Errorf("Expected total paid 400.00, got %s", totals.TotalPaid)
	}
	// (1100-300) + (525-100) = 800 + 425 = 1225
	if !totals.LoanBalance.Equal(MoneyFromInt(1225)) {
		t.Errorf("Expected loan balance 1225.00, got %s", totals.LoanBalance)
	}
}

func TestMostRecentRepayment(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	reps := []*Repayment{
		{ID: 1, Date: day},
		{ID: 3, Date: day}, // same date, later insertion
		{ID: 2, Date: day.AddDate(0, 0, -1)},
	}

	latest := MostRecentRepayment(reps)
	if latest == nil || latest.ID != 3 {
		t.Errorf("Expected repayment 3 as most recent, got %+v", latest)
	}

	if MostRecentRepayment(nil) != nil {
		t.Error("Expected nil for empty slice")
	}
}
