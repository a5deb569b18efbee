package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
)

// ExpenseHandler handles vendor and expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateVendorRequest represents the create vendor request body
type CreateVendorRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// RecordExpenseRequest represents the record expense request body
type RecordExpenseRequest struct {
	BranchID    int64   `json:"branchId" validate:"gt=0"`
	VendorID    *int64  `json:"vendorId,omitempty"`
	Category    string  `json:"category" validate:"required"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount" validate:"required"`
	Date        string  `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the update expense request body. Omitted
// fields keep their current value.
type UpdateExpenseRequest struct {
	VendorID    *int64  `json:"vendorId,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// CreateVendor handles POST /api/v1/vendors
func (h *ExpenseHandler) CreateVendor(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req CreateVendorRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	vendor, err := h.expenseService.CreateVendor(c.Request().Context(), organizationID, service.CreateVendorInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to create vendor")
	}

	log.Info().Int64("organization_id", organizationID).Int64("vendor_id", vendor.ID).Msg("Vendor created")

	return c.JSON(http.StatusCreated, vendor)
}

// GetVendors handles GET /api/v1/vendors
func (h *ExpenseHandler) GetVendors(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	vendors, err := h.expenseService.GetVendors(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list vendors")
		return NewInternalError(c, "Failed to list vendors")
	}

	return c.JSON(http.StatusOK, vendors)
}

// RecordExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) RecordExpense(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)
	officerID := middleware.GetOfficerID(c)

	var req RecordExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", nil)
	}

	amount, err := domain.MoneyFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date := time.Now().UTC()
	if req.Date != "" {
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	expense, err := h.expenseService.RecordExpense(c.Request().Context(), organizationID, service.RecordExpenseInput{
		BranchID:    req.BranchID,
		VendorID:    req.VendorID,
		Category:    domain.ExpenseCategory(req.Category),
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		RecordedBy:  officerID,
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to record expense")
	}

	log.Info().
		Int64("organization_id", organizationID).
		Int64("expense_id", expense.ID).
		Str("amount", amount.String()).
		Msg("Expense recorded")

	return c.JSON(http.StatusCreated, expense)
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	dateRange, err := dateRangeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	expenses, err := h.expenseService.GetExpenses(c.Request().Context(), scope, dateRange)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", scope.OrganizationID).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	return c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid expense id", nil)
	}

	expense, err := h.expenseService.GetExpense(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get expense")
	}

	return c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid expense id", nil)
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateExpenseInput{
		VendorID:    req.VendorID,
		Description: req.Description,
	}
	if req.Category != nil {
		category := domain.ExpenseCategory(*req.Category)
		input.Category = &category
	}
	if req.Amount != nil {
		amount, err := domain.MoneyFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.Date = &date
	}

	expense, err := h.expenseService.UpdateExpense(c.Request().Context(), organizationID, id, input)
	if err != nil {
		return respondDomainError(c, err, "Failed to update expense")
	}

	log.Info().Int64("organization_id", organizationID).Int64("expense_id", id).Msg("Expense updated")

	return c.JSON(http.StatusOK, expense)
}
