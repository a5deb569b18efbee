package service

import (
	"context"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// ReportService assembles read-only reports from aggregation results. It
// never writes and it recomputes from current data on every call.
type ReportService struct {
	agg           *AggregationService
	loanRepo      domain.LoanRepository
	repaymentRepo domain.RepaymentRepository
	borrowerRepo  domain.BorrowerRepository
}

func NewReportService(
	agg *AggregationService,
	loanRepo domain.LoanRepository,
	repaymentRepo domain.RepaymentRepository,
	borrowerRepo domain.BorrowerRepository,
) *ReportService {
	return &ReportService{
		agg:           agg,
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		borrowerRepo:  borrowerRepo,
	}
}

// ProfitLoss reports repayments collected against expenses for the period.
func (s *ReportService) ProfitLoss(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) (*domain.ProfitLossReport, error) {
	income, err := s.agg.TotalRepayments(ctx, scope, dateRange)
	if err != nil {
		return nil, err
	}
	expenses, err := s.agg.TotalExpenses(ctx, scope, dateRange)
	if err != nil {
		return nil, err
	}
	return &domain.ProfitLossReport{
		Income:   income,
		Expenses: expenses,
		Profit:   income.Sub(expenses).Round2(),
	}, nil
}

// TrialBalance reports the three ledger totals side by side.
func (s *ReportService) TrialBalance(ctx context.Context, scope domain.Scope) (*domain.TrialBalanceReport, error) {
	loans, err := s.agg.TotalLoanPrincipal(ctx, scope)
	if err != nil {
		return nil, err
	}
	savings, err := s.agg.TotalSavings(ctx, scope.OrganizationID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.agg.TotalExpenses(ctx, scope, domain.AllTime)
	if err != nil {
		return nil, err
	}
	return &domain.TrialBalanceReport{Loans: loans, Savings: savings, Expenses: expenses}, nil
}

// BalanceSheet reports assets (loans plus savings), liabilities (expenses)
// and the derived equity line.
func (s *ReportService) BalanceSheet(ctx context.Context, scope domain.Scope) (*domain.BalanceSheetReport, error) {
	tb, err := s.TrialBalance(ctx, scope)
	if err != nil {
		return nil, err
	}

	assets := tb.Loans.Add(tb.Savings).Round2()
	liabilities := tb.Expenses
	return &domain.BalanceSheetReport{
		TotalLoans:    tb.Loans,
		TotalSavings:  tb.Savings,
		TotalExpenses: tb.Expenses,
		Assets:        assets,
		Liabilities:   liabilities,
		Equity:        assets.Sub(liabilities).Round2(),
	}, nil
}

// BranchEquity reports collections minus expenses per branch.
func (s *ReportService) BranchEquity(ctx context.Context, organizationID int64) ([]domain.BranchEquityRow, error) {
	return s.agg.BranchEquity(ctx, organizationID)
}

// OfficerPerformance reports portfolio value per managing officer.
func (s *ReportService) OfficerPerformance(ctx context.Context, scope domain.Scope) ([]domain.OfficerPerformanceRow, error) {
	return s.agg.OfficerPerformance(ctx, scope)
}

func (s *ReportService) collectionsBetween(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CollectionsReport, error) {
	reps, err := s.repaymentRepo.ListByScope(ctx, scope, domain.RangeBetween(from, to))
	if err != nil {
		return nil, err
	}

	borrowers, err := s.borrowerRepo.ListByOrganization(ctx, scope.OrganizationID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(borrowers))
	for _, b := range borrowers {
		names[b.ID] = b.FullName
	}

	rows := make([]domain.CollectionRecord, 0, len(reps))
	amounts := make([]domain.Money, 0, len(reps))
	for _, r := range reps {
		record := domain.CollectionRecord{
			RepaymentID: r.ID,
			LoanID:      r.LoanID,
			Amount:      r.Amount,
			Date:        r.Date,
		}
		if loan, err := s.loanRepo.GetByID(ctx, scope.OrganizationID, r.LoanID); err == nil && loan.BorrowerID != nil {
			record.Borrower = names[*loan.BorrowerID]
		}
		rows = append(rows, record)
		amounts = append(amounts, r.Amount)
	}

	return &domain.CollectionsReport{
		From:  from,
		To:    to,
		Rows:  rows,
		Total: domain.SumMoney(amounts),
	}, nil
}

// DailyCollections reports repayments posted on a single day.
func (s *ReportService) DailyCollections(ctx context.Context, scope domain.Scope, day time.Time) (*domain.CollectionsReport, error) {
	d := day.UTC().Truncate(24 * time.Hour)
	return s.collectionsBetween(ctx, scope, d, d)
}

// MonthlyCollections reports repayments posted within a calendar month.
func (s *ReportService) MonthlyCollections(ctx context.Context, scope domain.Scope, year int, month time.Month) (*domain.CollectionsReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return s.collectionsBetween(ctx, scope, from, to)
}

// CustomCollections reports repayments posted within an arbitrary range.
func (s *ReportService) CustomCollections(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CollectionsReport, error) {
	return s.collectionsBetween(ctx, scope, from, to)
}

// Dashboard assembles the organization overview.
func (s *ReportService) Dashboard(ctx context.Context, organizationID int64) (*domain.DashboardSummary, error) {
	scope := domain.OrgScope(organizationID)

	statusCounts, totalLoans, err := s.agg.LoanStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	borrowers, err := s.agg.CountBorrowers(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	portfolio, err := s.agg.TotalPortfolio(ctx, scope)
	if err != nil {
		return nil, err
	}
	repayments, err := s.agg.TotalRepayments(ctx, scope, domain.AllTime)
	if err != nil {
		return nil, err
	}
	collections, err := s.agg.TotalCollections(ctx, scope, domain.AllTime)
	if err != nil {
		return nil, err
	}
	savings, err := s.agg.TotalSavings(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	series, err := s.agg.MonthlySeries(ctx, scope, 6)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Borrowers:        borrowers,
		Loans:            totalLoans,
		ActiveLoans:      statusCounts[domain.LoanStatusActive],
		OverdueLoans:     statusCounts[domain.LoanStatusOverdue],
		PAR30Loans:       statusCounts[domain.LoanStatusPAR30],
		ClosedLoans:      statusCounts[domain.LoanStatusClosed],
		TotalPortfolio:   portfolio,
		TotalRepayments:  repayments,
		TotalCollections: collections,
		TotalSavings:     savings,
		MonthlySeries:    series,
	}, nil
}
