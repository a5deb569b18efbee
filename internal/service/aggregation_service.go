package service

import (
	"context"
	"sort"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// AggregationService computes the scoped sums reports are assembled from.
// Every result is rounded to two places and an empty scope yields zero, never
// an error.
type AggregationService struct {
	loanRepo       domain.LoanRepository
	repaymentRepo  domain.RepaymentRepository
	collectionRepo domain.CollectionRepository
	savingRepo     domain.SavingRepository
	expenseRepo    domain.ExpenseRepository
	branchRepo     domain.BranchRepository
	officerRepo    domain.OfficerRepository
	borrowerRepo   domain.BorrowerRepository
}

func NewAggregationService(
	loanRepo domain.LoanRepository,
	repaymentRepo domain.RepaymentRepository,
	collectionRepo domain.CollectionRepository,
	savingRepo domain.SavingRepository,
	expenseRepo domain.ExpenseRepository,
	branchRepo domain.BranchRepository,
	officerRepo domain.OfficerRepository,
	borrowerRepo domain.BorrowerRepository,
) *AggregationService {
	return &AggregationService{
		loanRepo:       loanRepo,
		repaymentRepo:  repaymentRepo,
		collectionRepo: collectionRepo,
		savingRepo:     savingRepo,
		expenseRepo:    expenseRepo,
		branchRepo:     branchRepo,
		officerRepo:    officerRepo,
		borrowerRepo:   borrowerRepo,
	}
}

// TotalPortfolio sums principal plus interest over the scope's loans. Fees
// and penalties are not part of portfolio value even though they count
// toward each loan's total due.
func (s *AggregationService) TotalPortfolio(ctx context.Context, scope domain.Scope) (domain.Money, error) {
	loans, err := s.loanRepo.ListByScope(ctx, scope)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	amounts := make([]domain.Money, len(loans))
	for i, l := range loans {
		amounts[i] = l.PortfolioValue()
	}
	return domain.SumMoney(amounts), nil
}

// TotalLoanPrincipal sums disbursed principal over the scope's loans.
func (s *AggregationService) TotalLoanPrincipal(ctx context.Context, scope domain.Scope) (domain.Money, error) {
	loans, err := s.loanRepo.ListByScope(ctx, scope)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	amounts := make([]domain.Money, len(loans))
	for i, l := range loans {
		amounts[i] = l.Principal
	}
	return domain.SumMoney(amounts), nil
}

// TotalRepayments sums repayment amounts in the scope and period.
func (s *AggregationService) TotalRepayments(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) (domain.Money, error) {
	reps, err := s.repaymentRepo.ListByScope(ctx, scope, dateRange)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	amounts := make([]domain.Money, len(reps))
	for i, r := range reps {
		amounts[i] = r.Amount
	}
	return domain.SumMoney(amounts), nil
}

// TotalCollections sums collection sheet items in the scope and period.
func (s *AggregationService) TotalCollections(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) (domain.Money, error) {
	items, err := s.collectionRepo.ListItemsByScope(ctx, scope, dateRange)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	amounts := make([]domain.Money, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return domain.SumMoney(amounts), nil
}

// TotalSavings sums ledger balances across the organization's accounts.
// Savings accounts belong to borrowers, not branches, so a branch filter
// does not apply here.
func (s *AggregationService) TotalSavings(ctx context.Context, organizationID int64) (domain.Money, error) {
	savings, err := s.savingRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	return domain.SumLedger(savings), nil
}

// TotalExpenses sums expenses in the scope and period.
func (s *AggregationService) TotalExpenses(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) (domain.Money, error) {
	expenses, err := s.expenseRepo.ListByScope(ctx, scope, dateRange)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	amounts := make([]domain.Money, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return domain.SumMoney(amounts), nil
}

// OfficerPerformance groups portfolio value by managing officer. Loans with
// no officer assigned group under officer ID 0 with an empty name.
func (s *AggregationService) OfficerPerformance(ctx context.Context, scope domain.Scope) ([]domain.OfficerPerformanceRow, error) {
	loans, err := s.loanRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	byOfficer := make(map[int64][]domain.Money)
	for _, l := range loans {
		var officerID int64
		if l.OfficerID != nil {
			officerID = *l.OfficerID
		}
		byOfficer[officerID] = append(byOfficer[officerID], l.PortfolioValue())
	}

	officers, err := s.officerRepo.ListByOrganization(ctx, scope.OrganizationID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(officers))
	for _, o := range officers {
		names[o.ID] = o.Username
	}

	rows := make([]domain.OfficerPerformanceRow, 0, len(byOfficer))
	for officerID, amounts := range byOfficer {
		rows = append(rows, domain.OfficerPerformanceRow{
			OfficerID: officerID,
			Officer:   names[officerID],
			Portfolio: domain.SumMoney(amounts),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].OfficerID < rows[j].OfficerID })
	return rows, nil
}

// BranchEquity computes collections minus expenses for every branch of the
// organization. Branches with no activity report zeros.
func (s *AggregationService) BranchEquity(ctx context.Context, organizationID int64) ([]domain.BranchEquityRow, error) {
	branches, err := s.branchRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.BranchEquityRow, 0, len(branches))
	for _, branch := range branches {
		scope := domain.BranchScope(organizationID, branch.ID)

		collections, err := s.TotalRepayments(ctx, scope, domain.AllTime)
		if err != nil {
			return nil, err
		}
		expenses, err := s.TotalExpenses(ctx, scope, domain.AllTime)
		if err != nil {
			return nil, err
		}

		rows = append(rows, domain.BranchEquityRow{
			BranchID:    branch.ID,
			Branch:      branch.Name,
			Collections: collections,
			Expenses:    expenses,
			Equity:      collections.Sub(expenses).Round2(),
		})
	}
	return rows, nil
}

// MonthlySeries buckets repayments from the trailing window by month of
// year. A window longer than a year folds same-named months from different
// years into one bucket; the dashboard chart has always drawn it that way.
func (s *AggregationService) MonthlySeries(ctx context.Context, scope domain.Scope, months int) ([]domain.MonthlyPoint, error) {
	if months <= 0 {
		months = 6
	}
	from := time.Now().UTC().AddDate(0, 0, -months*30)
	reps, err := s.repaymentRepo.ListByScope(ctx, scope, domain.DateRange{From: &from})
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Month][]domain.Money)
	for _, r := range reps {
		buckets[r.Date.Month()] = append(buckets[r.Date.Month()], r.Amount)
	}

	points := make([]domain.MonthlyPoint, 0, len(buckets))
	for month, amounts := range buckets {
		points = append(points, domain.MonthlyPoint{Month: month, Total: domain.SumMoney(amounts)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points, nil
}

// LoanStatusCounts tallies the scope's loans per status.
func (s *AggregationService) LoanStatusCounts(ctx context.Context, scope domain.Scope) (map[domain.LoanStatus]int, int, error) {
	loans, err := s.loanRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[domain.LoanStatus]int)
	for _, l := range loans {
		counts[l.Status]++
	}
	return counts, len(loans), nil
}

// CountBorrowers counts the organization's borrowers.
func (s *AggregationService) CountBorrowers(ctx context.Context, organizationID int64) (int64, error) {
	return s.borrowerRepo.CountByOrganization(ctx, organizationID)
}
