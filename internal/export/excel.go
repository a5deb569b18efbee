// Package export renders reports as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// Workbook builds a single-sheet xlsx file from a header row and data rows.
func Workbook(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet so the workbook only carries ours.
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CollectionsWorkbook renders a collections report with one row per
// repayment and a trailing total row.
func CollectionsWorkbook(report *domain.CollectionsReport) ([]byte, error) {
	headers := []string{"Repayment ID", "Loan ID", "Borrower", "Amount", "Date"}
	rows := make([][]interface{}, 0, len(report.Rows)+1)
	for _, r := range report.Rows {
		rows = append(rows, []interface{}{
			r.RepaymentID,
			r.LoanID,
			r.Borrower,
			r.Amount.String(),
			r.Date.Format("2006-01-02"),
		})
	}
	rows = append(rows, []interface{}{"", "", "Total", report.Total.String(), ""})
	return Workbook("Collections", headers, rows)
}

// BranchEquityWorkbook renders the per-branch equity report.
func BranchEquityWorkbook(rows []domain.BranchEquityRow) ([]byte, error) {
	headers := []string{"Branch ID", "Branch", "Collections", "Expenses", "Equity"}
	data := make([][]interface{}, len(rows))
	for i, r := range rows {
		data[i] = []interface{}{
			r.BranchID,
			r.Branch,
			r.Collections.String(),
			r.Expenses.String(),
			r.Equity.String(),
		}
	}
	return Workbook("Branch Equity", headers, data)
}

// OfficerPerformanceWorkbook renders the per-officer portfolio report.
func OfficerPerformanceWorkbook(rows []domain.OfficerPerformanceRow) ([]byte, error) {
	headers := []string{"Officer ID", "Officer", "Portfolio"}
	data := make([][]interface{}, len(rows))
	for i, r := range rows {
		data[i] = []interface{}{r.OfficerID, r.Officer, r.Portfolio.String()}
	}
	return Workbook("Officer Performance", headers, data)
}

// ProfitLossWorkbook renders the profit and loss report as line/amount pairs.
func ProfitLossWorkbook(report *domain.ProfitLossReport) ([]byte, error) {
	headers := []string{"Line", "Amount"}
	rows := [][]interface{}{
		{"Income", report.Income.String()},
		{"Expenses", report.Expenses.String()},
		{"Profit", report.Profit.String()},
	}
	return Workbook("Profit and Loss", headers, rows)
}

// TrialBalanceWorkbook renders the trial balance as account/balance pairs.
func TrialBalanceWorkbook(report *domain.TrialBalanceReport) ([]byte, error) {
	headers := []string{"Account", "Balance"}
	rows := [][]interface{}{
		{"Loans", report.Loans.String()},
		{"Savings", report.Savings.String()},
		{"Expenses", report.Expenses.String()},
	}
	return Workbook("Trial Balance", headers, rows)
}

// BalanceSheetWorkbook renders the balance sheet as line/amount pairs.
func BalanceSheetWorkbook(report *domain.BalanceSheetReport) ([]byte, error) {
	headers := []string{"Line", "Amount"}
	rows := [][]interface{}{
		{"Total Loans", report.TotalLoans.String()},
		{"Total Savings", report.TotalSavings.String()},
		{"Total Expenses", report.TotalExpenses.String()},
		{"Assets", report.Assets.String()},
		{"Liabilities", report.Liabilities.String()},
		{"Equity", report.Equity.String()},
	}
	return Workbook("Balance Sheet", headers, rows)
}

// LoanPortfolioWorkbook renders a loan listing with its derived amounts, one
// row per loan.
func LoanPortfolioWorkbook(loans []*domain.Loan) ([]byte, error) {
	headers := []string{"ID", "Borrower ID", "Branch ID", "Principal", "Rate",
		"Interest", "Total Due", "Paid", "Balance", "Status", "Disbursed", "Maturity"}
	data := make([][]interface{}, len(loans))
	for i, l := range loans {
		var borrowerID, branchID interface{}
		if l.BorrowerID != nil {
			borrowerID = *l.BorrowerID
		}
		if l.BranchID != nil {
			branchID = *l.BranchID
		}
		data[i] = []interface{}{
			l.ID,
			borrowerID,
			branchID,
			l.Principal.String(),
			l.InterestRate.String(),
			l.Interest().String(),
			l.TotalDue().String(),
			l.Paid.String(),
			l.OutstandingBalance().String(),
			string(l.Status),
			l.DisbursedDate.Format("2006-01-02"),
			l.Maturity.Format("2006-01-02"),
		}
	}
	return Workbook("Loans", headers, data)
}
