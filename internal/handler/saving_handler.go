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

// SavingHandler handles savings account HTTP requests
type SavingHandler struct {
	savingService *service.SavingService
}

// NewSavingHandler creates a new SavingHandler
func NewSavingHandler(savingService *service.SavingService) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

// OpenAccountRequest represents the open account request body
type OpenAccountRequest struct {
	BorrowerID    int64  `json:"borrowerId" validate:"gt=0"`
	Name          string `json:"name" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	Product       string `json:"product"`
	Deposit       string `json:"deposit,omitempty"`
}

// DepositRequest represents a deposit into an account
type DepositRequest struct {
	Amount string `json:"amount"`
	Date   string `json:"date,omitempty"`
}

// OpenAccount handles POST /api/v1/savings
func (h *SavingHandler) OpenAccount(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", nil)
	}

	deposit := domain.ZeroMoney()
	if req.Deposit != "" {
		var err error
		if deposit, err = domain.MoneyFromString(req.Deposit); err != nil {
			return NewValidationError(c, "Invalid deposit", []ValidationError{
				{Field: "deposit", Message: "Must be a valid decimal number"},
			})
		}
	}

	saving, err := h.savingService.OpenAccount(c.Request().Context(), organizationID, service.OpenAccountInput{
		BorrowerID:    req.BorrowerID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		Product:       req.Product,
		Deposit:       deposit,
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to open savings account")
	}

	log.Info().Int64("organization_id", organizationID).Int64("saving_id", saving.ID).Msg("Savings account opened")

	return c.JSON(http.StatusCreated, saving)
}

// GetAccounts handles GET /api/v1/savings
func (h *SavingHandler) GetAccounts(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	savings, err := h.savingService.GetAccounts(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list savings accounts")
		return NewInternalError(c, "Failed to list savings accounts")
	}

	return c.JSON(http.StatusOK, savings)
}

// GetAccount handles GET /api/v1/savings/:id
func (h *SavingHandler) GetAccount(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid saving id", nil)
	}

	saving, err := h.savingService.GetAccount(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get savings account")
	}

	return c.JSON(http.StatusOK, saving)
}

// Deposit handles POST /api/v1/savings/:id/deposits
func (h *SavingHandler) Deposit(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid saving id", nil)
	}

	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
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

	saving, err := h.savingService.Deposit(c.Request().Context(), organizationID, id, amount, date)
	if err != nil {
		return respondDomainError(c, err, "Failed to deposit")
	}

	log.Info().
		Int64("organization_id", organizationID).
		Int64("saving_id", id).
		Str("amount", amount.String()).
		Msg("Deposit recorded")

	return c.JSON(http.StatusOK, saving)
}
