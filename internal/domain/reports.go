package domain

import "time"

// ProfitLossReport is income (repayments collected) against operating
// expenses for a scope and optional period.
type ProfitLossReport struct {
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
	Profit   Money `json:"profit"`
}

// TrialBalanceReport lists the three ledger totals side by side.
type TrialBalanceReport struct {
	Loans    Money `json:"loans"`   // principal sum
	Savings  Money `json:"savings"` // ledger balance sum
	Expenses Money `json:"expenses"`
}

// BalanceSheetReport extends the trial balance with the derived equity line.
type BalanceSheetReport struct {
	TotalLoans    Money `json:"totalLoans"`
	TotalSavings  Money `json:"totalSavings"`
	TotalExpenses Money `json:"totalExpenses"`
	Assets        Money `json:"assets"`
	Liabilities   Money `json:"liabilities"`
	Equity        Money `json:"equity"`
}

// BranchEquityRow is one branch's collections minus expenses.
type BranchEquityRow struct {
	BranchID    int64  `json:"branchId"`
	Branch      string `json:"branch"`
	Collections Money  `json:"collections"`
	Expenses    Money  `json:"expenses"`
	Equity      Money  `json:"equity"`
}

// OfficerPerformanceRow is one officer's portfolio (principal + interest over
// the loans they manage). Loans without an officer group under OfficerID 0.
type OfficerPerformanceRow struct {
	OfficerID int64  `json:"officerId"`
	Officer   string `json:"officer"`
	Portfolio Money  `json:"portfolio"`
}

// MonthlyPoint is one bucket of the repayment trend series. Buckets group by
// month-of-year only, matching the dashboard chart's behavior.
type MonthlyPoint struct {
	Month time.Month `json:"month"`
	Total Money      `json:"total"`
}

// CollectionRecord is one row of a collections report: a repayment joined to
// its loan and borrower for display.
type CollectionRecord struct {
	RepaymentID int64     `json:"repaymentId"`
	LoanID      int64     `json:"loanId"`
	Borrower    string    `json:"borrower"`
	Amount      Money     `json:"amount"`
	Date        time.Time `json:"date"`
}

// CollectionsReport is the rows plus their total for a period.
type CollectionsReport struct {
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Rows  []CollectionRecord `json:"rows"`
	Total Money              `json:"total"`
}

// DashboardSummary is the organization overview: entity counts, headline
// totals and the repayment trend chart.
type DashboardSummary struct {
	Borrowers        int64          `json:"borrowers"`
	Loans            int            `json:"loans"`
	ActiveLoans      int            `json:"activeLoans"`
	OverdueLoans     int            `json:"overdueLoans"`
	PAR30Loans       int            `json:"par30Loans"`
	ClosedLoans      int            `json:"closedLoans"`
	TotalPortfolio   Money          `json:"totalPortfolio"`
	TotalRepayments  Money          `json:"totalRepayments"`
	TotalCollections Money          `json:"totalCollections"`
	TotalSavings     Money          `json:"totalSavings"`
	MonthlySeries    []MonthlyPoint `json:"monthlySeries"`
}
