package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/export"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles reporting and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func wantsXLSX(c echo.Context) bool {
	return c.QueryParam("format") == "xlsx"
}

func sendWorkbook(c echo.Context, filename string, data []byte, err error) error {
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to render workbook")
		return NewInternalError(c, "Failed to render workbook")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

// ProfitLoss handles GET /api/v1/reports/profit-loss
func (h *ReportHandler) ProfitLoss(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	dateRange, err := dateRangeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	report, err := h.reportService.ProfitLoss(c.Request().Context(), scope, dateRange)
	if err != nil {
		return respondDomainError(c, err, "Failed to build profit and loss report")
	}

	if wantsXLSX(c) {
		data, err := export.ProfitLossWorkbook(report)
		return sendWorkbook(c, "profit-loss.xlsx", data, err)
	}

	return c.JSON(http.StatusOK, report)
}

// TrialBalance handles GET /api/v1/reports/trial-balance
func (h *ReportHandler) TrialBalance(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	report, err := h.reportService.TrialBalance(c.Request().Context(), scope)
	if err != nil {
		return respondDomainError(c, err, "Failed to build trial balance")
	}

	if wantsXLSX(c) {
		data, err := export.TrialBalanceWorkbook(report)
		return sendWorkbook(c, "trial-balance.xlsx", data, err)
	}

	return c.JSON(http.StatusOK, report)
}

// BalanceSheet handles GET /api/v1/reports/balance-sheet
func (h *ReportHandler) BalanceSheet(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	report, err := h.reportService.BalanceSheet(c.Request().Context(), scope)
	if err != nil {
		return respondDomainError(c, err, "Failed to build balance sheet")
	}

	if wantsXLSX(c) {
		data, err := export.BalanceSheetWorkbook(report)
		return sendWorkbook(c, "balance-sheet.xlsx", data, err)
	}

	return c.JSON(http.StatusOK, report)
}

// BranchEquity handles GET /api/v1/reports/branch-equity
func (h *ReportHandler) BranchEquity(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	rows, err := h.reportService.BranchEquity(c.Request().Context(), organizationID)
	if err != nil {
		return respondDomainError(c, err, "Failed to build branch equity report")
	}

	if wantsXLSX(c) {
		data, err := export.BranchEquityWorkbook(rows)
		return sendWorkbook(c, "branch-equity.xlsx", data, err)
	}

	return c.JSON(http.StatusOK, rows)
}

// OfficerPerformance handles GET /api/v1/reports/officer-performance
func (h *ReportHandler) OfficerPerformance(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	rows, err := h.reportService.OfficerPerformance(c.Request().Context(), scope)
	if err != nil {
		return respondDomainError(c, err, "Failed to build officer performance report")
	}

	if wantsXLSX(c) {
		data, err := export.OfficerPerformanceWorkbook(rows)
		return sendWorkbook(c, "officer-performance.xlsx", data, err)
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) respondCollections(c echo.Context, report *domain.CollectionsReport, filename string) error {
	if wantsXLSX(c) {
		data, err := export.CollectionsWorkbook(report)
		return sendWorkbook(c, filename, data, err)
	}
	return c.JSON(http.StatusOK, report)
}

// DailyCollections handles GET /api/v1/reports/collections/daily
func (h *ReportHandler) DailyCollections(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	day := time.Now().UTC()
	if v := c.QueryParam("date"); v != "" {
		if day, err = time.Parse("2006-01-02", v); err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	report, err := h.reportService.DailyCollections(c.Request().Context(), scope, day)
	if err != nil {
		return respondDomainError(c, err, "Failed to build daily collections report")
	}

	return h.respondCollections(c, report, "collections-daily.xlsx")
}

// MonthlyCollections handles GET /api/v1/reports/collections/monthly
func (h *ReportHandler) MonthlyCollections(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return NewValidationError(c, "Invalid year", []ValidationError{
				{Field: "year", Message: "Must be a positive integer"},
			})
		}
		year = y
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be between 1 and 12"},
			})
		}
		month = time.Month(m)
	}

	report, err := h.reportService.MonthlyCollections(c.Request().Context(), scope, year, month)
	if err != nil {
		return respondDomainError(c, err, "Failed to build monthly collections report")
	}

	return h.respondCollections(c, report, "collections-monthly.xlsx")
}

// CustomCollections handles GET /api/v1/reports/collections/custom
func (h *ReportHandler) CustomCollections(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return NewValidationError(c, "Invalid from date", []ValidationError{
			{Field: "from", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return NewValidationError(c, "Invalid to date", []ValidationError{
			{Field: "to", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	if to.Before(from) {
		return NewValidationError(c, "Invalid range", []ValidationError{
			{Field: "to", Message: "Must not be before from"},
		})
	}

	report, err := h.reportService.CustomCollections(c.Request().Context(), scope, from, to)
	if err != nil {
		return respondDomainError(c, err, "Failed to build collections report")
	}

	return h.respondCollections(c, report, "collections-custom.xlsx")
}

// Dashboard handles GET /api/v1/dashboard/summary
func (h *ReportHandler) Dashboard(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	summary, err := h.reportService.Dashboard(c.Request().Context(), organizationID)
	if err != nil {
		return respondDomainError(c, err, "Failed to build dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}
