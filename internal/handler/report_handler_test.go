package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

func TestDashboard(t *testing.T) {
	f := newFixture()
	f.seedLoan(t)
	f.borrowerRepo.AddBorrower(&domain.Borrower{
		OrganizationID: 1,
		FullName:       "Grace Auma",
		UniqueID:       "NIN-001",
		Status:         domain.BorrowerStatusActive,
	})

	c, rec := f.request(t, http.MethodGet, "/api/v1/dashboard/summary", "")
	if err := f.report.Dashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Borrowers      int64  `json:"borrowers"`
		Loans          int    `json:"loans"`
		TotalPortfolio string `json:"totalPortfolio"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Borrowers != 1 {
		t.Errorf("Expected 1 borrower, got %d", resp.Borrowers)
	}
	if resp.Loans != 1 {
		t.Errorf("Expected 1 loan, got %d", resp.Loans)
	}
	if resp.TotalPortfolio != "1100.00" {
		t.Errorf("Expected portfolio 1100.00, got %s", resp.TotalPortfolio)
	}
}

func TestProfitLoss_EmptyOrganization(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/profit-loss", "")
	if err := f.report.ProfitLoss(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Income string `json:"income"`
		Profit string `json:"profit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Income != "0.00" || resp.Profit != "0.00" {
		t.Errorf("Expected zero report, got income %s profit %s", resp.Income, resp.Profit)
	}
}

func TestCustomCollections_BadRange(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/collections/custom?from=2024-03-31&to=2024-03-01", "")
	if err := f.report.CustomCollections(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDailyCollections_XLSX(t *testing.T) {
	f := newFixture()
	f.seedLoan(t)

	c, _ := f.request(t, http.MethodPost, "/api/v1/loans/1/repayments", `{"amount":"100","date":"2024-03-05"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := f.repayment.PostRepayment(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/collections/daily?date=2024-03-05&format=xlsx", "")
	if err := f.report.DailyCollections(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected workbook bytes in body")
	}
}

func TestProfitLoss_XLSXExport(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/profit-loss?format=xlsx", "")
	if err := f.report.ProfitLoss(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected workbook bytes in body")
	}
}

func TestBalanceSheet_XLSXExport(t *testing.T) {
	f := newFixture()

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/balance-sheet?format=xlsx", "")
	if err := f.report.BalanceSheet(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
}

func TestMonthlyCollections_Bounds(t *testing.T) {
	f := newFixture()
	f.seedLoan(t)

	for _, date := range []string{"2024-03-01", "2024-03-31", "2024-04-01"} {
		c, _ := f.request(t, http.MethodPost, "/api/v1/loans/1/repayments", `{"amount":"10","date":"`+date+`"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := f.repayment.PostRepayment(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	c, rec := f.request(t, http.MethodGet, "/api/v1/reports/collections/monthly?year=2024&month=3", "")
	if err := f.report.MonthlyCollections(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		From  time.Time `json:"from"`
		Total string    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Total != "20.00" {
		t.Errorf("Expected March total 20.00, got %s", resp.Total)
	}
}
