package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
	"github.com/sparklweb1988/microfnance/internal/testutil"
)

// fixture wires every handler against in-memory repositories.
type fixture struct {
	echo          *echo.Echo
	orgRepo       *testutil.MockOrganizationRepository
	branchRepo    *testutil.MockBranchRepository
	officerRepo   *testutil.MockOfficerRepository
	borrowerRepo  *testutil.MockBorrowerRepository
	loanRepo      *testutil.MockLoanRepository
	repayRepo     *testutil.MockRepaymentRepository
	savingRepo    *testutil.MockSavingRepository
	tx            *testutil.MockTxBeginner
	borrower      *BorrowerHandler
	loan          *LoanHandler
	repayment     *RepaymentHandler
	report        *ReportHandler
	branchHandler *BranchHandler
}

func newFixture() *fixture {
	e := echo.New()
	e.Validator = NewRequestValidator()

	orgRepo := testutil.NewMockOrganizationRepository()
	branchRepo := testutil.NewMockBranchRepository()
	officerRepo := testutil.NewMockOfficerRepository()
	borrowerRepo := testutil.NewMockBorrowerRepository()
	loanRepo := testutil.NewMockLoanRepository()
	repayRepo := testutil.NewMockRepaymentRepository(loanRepo)
	collectionRepo := testutil.NewMockCollectionRepository(officerRepo, loanRepo)
	savingRepo := testutil.NewMockSavingRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	tx := &testutil.MockTxBeginner{}

	branchRepo.AddBranch(&domain.Branch{ID: 1, OrganizationID: 1, Name: "Head Office"})

	loanService := service.NewLoanService(loanRepo, borrowerRepo, branchRepo, officerRepo, nil)
	repaymentService := service.NewRepaymentService(tx, loanRepo, repayRepo, nil)
	borrowerService := service.NewBorrowerService(borrowerRepo, loanRepo, branchRepo)
	savingService := service.NewSavingService(tx, savingRepo, borrowerRepo, nil)
	branchService := service.NewBranchService(branchRepo, officerRepo, orgRepo)
	agg := service.NewAggregationService(loanRepo, repayRepo, collectionRepo, savingRepo, expenseRepo, branchRepo, officerRepo, borrowerRepo)
	reportService := service.NewReportService(agg, loanRepo, repayRepo, borrowerRepo)

	return &fixture{
		echo:          e,
		orgRepo:       orgRepo,
		branchRepo:    branchRepo,
		officerRepo:   officerRepo,
		borrowerRepo:  borrowerRepo,
		loanRepo:      loanRepo,
		repayRepo:     repayRepo,
		savingRepo:    savingRepo,
		tx:            tx,
		borrower:      NewBorrowerHandler(borrowerService, savingService),
		loan:          NewLoanHandler(loanService),
		repayment:     NewRepaymentHandler(repaymentService),
		report:        NewReportHandler(reportService),
		branchHandler: NewBranchHandler(branchService),
	}
}

// request builds an authenticated echo context for organization 1, officer 1.
func (f *fixture) request(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, middleware.OrganizationIDKey, int64(1))
	ctx = context.WithValue(ctx, middleware.OfficerIDKey, int64(1))
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func (f *fixture) seedLoan(t *testing.T) *domain.Loan {
	t.Helper()
	loan := &domain.Loan{
		ID:             1,
		OrganizationID: 1,
		Principal:      domain.MoneyFromInt(1000),
		InterestRate:   decimalFromInt(10),
		Fees:           domain.ZeroMoney(),
		Penalty:        domain.ZeroMoney(),
		Paid:           domain.ZeroMoney(),
		TenureDays:     30,
		Status:         domain.LoanStatusActive,
		DisbursedDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	loan.Normalize()
	f.loanRepo.AddLoan(loan)
	return loan
}
