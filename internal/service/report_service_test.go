package service

import (
	"context"
	"testing"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

func newReportFixture(t *testing.T) (*ReportService, *aggFixture) {
	t.Helper()
	f := newAggFixture(t)
	svc := NewReportService(f.svc, f.loanRepo, f.repaymentRepo, f.borrowerRepo)
	return svc, f
}

func TestProfitLoss(t *testing.T) {
	svc, f := newReportFixture(t)
	loan := f.addLoan(1, 1, nil, nil, 1000, 10)

	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 1, LoanID: loan.ID, Amount: domain.MoneyFromInt(500), Date: time.Now().UTC()})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: 1, OrganizationID: 1, BranchID: 1,
		Category: domain.ExpenseCategorySalary,
		Amount:   domain.MoneyFromInt(200),
		Date:     time.Now().UTC(),
	})

	report, err := svc.ProfitLoss(context.Background(), domain.OrgScope(1), domain.AllTime)
	if err != nil {
		t.Fatalf("ProfitLoss: %v", err)
	}
	if report.Income.String() != "500.00" || report.Expenses.String() != "200.00" || report.Profit.String() != "300.00" {
		t.Errorf("report = %+v, want 500.00 / 200.00 / 300.00", report)
	}
}

func TestBalanceSheet_EquityDerivation(t *testing.T) {
	svc, f := newReportFixture(t)
	f.addLoan(1, 1, nil, nil, 1000, 10)
	f.savingRepo.AddSaving(&domain.Saving{
		ID: 1, OrganizationID: 1, BorrowerID: 1,
		Name: "main", AccountNumber: "SA-001",
		LedgerBalance: domain.MoneyFromInt(400),
		Status:        domain.SavingStatusActive,
	})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: 1, OrganizationID: 1, BranchID: 1,
		Category: domain.ExpenseCategoryRent,
		Amount:   domain.MoneyFromInt(300),
		Date:     time.Now().UTC(),
	})

	report, err := svc.BalanceSheet(context.Background(), domain.OrgScope(1))
	if err != nil {
		t.Fatalf("BalanceSheet: %v", err)
	}
	// assets are principal sum + savings, not portfolio value
	if got := report.Assets.String(); got != "1400.00" {
		t.Errorf("assets = %s, want 1400.00", got)
	}
	if got := report.Liabilities.String(); got != "300.00" {
		t.Errorf("liabilities = %s, want 300.00", got)
	}
	if got := report.Equity.String(); got != "1100.00" {
		t.Errorf("equity = %s, want 1100.00", got)
	}
}

func TestTrialBalance_EmptyOrganization(t *testing.T) {
	svc, _ := newReportFixture(t)

	report, err := svc.TrialBalance(context.Background(), domain.OrgScope(7))
	if err != nil {
		t.Fatalf("TrialBalance: %v", err)
	}
	if report.Loans.String() != "0.00" || report.Savings.String() != "0.00" || report.Expenses.String() != "0.00" {
		t.Errorf("report = %+v, want all zeros", report)
	}
}

func TestDailyCollections(t *testing.T) {
	svc, f := newReportFixture(t)
	f.borrowerRepo.AddBorrower(&domain.Borrower{ID: 3, OrganizationID: 1, FullName: "Grace Auma", UniqueID: "b-3", Status: domain.BorrowerStatusActive})
	borrowerID := int64(3)
	loan := f.addLoan(1, 1, nil, nil, 1000, 10)
	loan.BorrowerID = &borrowerID

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 1, LoanID: loan.ID, Amount: domain.MoneyFromInt(60), Date: day.Add(9 * time.Hour)})
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 2, LoanID: loan.ID, Amount: domain.MoneyFromInt(40), Date: day.Add(15 * time.Hour)})
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 3, LoanID: loan.ID, Amount: domain.MoneyFromInt(999), Date: day.AddDate(0, 0, 1)})

	report, err := svc.DailyCollections(context.Background(), domain.OrgScope(1), day)
	if err != nil {
		t.Fatalf("DailyCollections: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	if got := report.Total.String(); got != "100.00" {
		t.Errorf("total = %s, want 100.00", got)
	}
	if report.Rows[0].Borrower != "Grace Auma" {
		t.Errorf("borrower = %q, want Grace Auma", report.Rows[0].Borrower)
	}
}

func TestMonthlyCollections_CalendarMonthBounds(t *testing.T) {
	svc, f := newReportFixture(t)
	loan := f.addLoan(1, 1, nil, nil, 1000, 10)

	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 1, LoanID: loan.ID, Amount: domain.MoneyFromInt(10), Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)})
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 2, LoanID: loan.ID, Amount: domain.MoneyFromInt(20), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 3, LoanID: loan.ID, Amount: domain.MoneyFromInt(30), Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)})
	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 4, LoanID: loan.ID, Amount: domain.MoneyFromInt(40), Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})

	report, err := svc.MonthlyCollections(context.Background(), domain.OrgScope(1), 2024, time.March)
	if err != nil {
		t.Fatalf("MonthlyCollections: %v", err)
	}
	if got := report.Total.String(); got != "50.00" {
		t.Errorf("total = %s, want 50.00", got)
	}
}

func TestDashboard(t *testing.T) {
	svc, f := newReportFixture(t)
	f.borrowerRepo.AddBorrower(&domain.Borrower{ID: 1, OrganizationID: 1, FullName: "A", UniqueID: "a", Status: domain.BorrowerStatusActive})
	f.borrowerRepo.AddBorrower(&domain.Borrower{ID: 2, OrganizationID: 1, FullName: "B", UniqueID: "b", Status: domain.BorrowerStatusActive})

	active := f.addLoan(1, 1, nil, nil, 1000, 10)
	closed := f.addLoan(2, 1, nil, nil, 500, 5)
	closed.Status = domain.LoanStatusClosed

	f.repaymentRepo.AddRepayment(&domain.Repayment{ID: 1, LoanID: active.ID, Amount: domain.MoneyFromInt(250), Date: time.Now().UTC()})

	summary, err := svc.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if summary.Borrowers != 2 {
		t.Errorf("borrowers = %d, want 2", summary.Borrowers)
	}
	if summary.Loans != 2 || summary.ActiveLoans != 1 || summary.ClosedLoans != 1 {
		t.Errorf("loan counts = %d/%d/%d, want 2/1/1", summary.Loans, summary.ActiveLoans, summary.ClosedLoans)
	}
	if got := summary.TotalPortfolio.String(); got != "1625.00" {
		t.Errorf("portfolio = %s, want 1625.00", got)
	}
	if got := summary.TotalRepayments.String(); got != "250.00" {
		t.Errorf("repayments = %s, want 250.00", got)
	}
	if len(summary.MonthlySeries) != 1 {
		t.Errorf("series buckets = %d, want 1", len(summary.MonthlySeries))
	}
}
