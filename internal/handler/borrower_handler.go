package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
)

// BorrowerHandler handles borrower-related HTTP requests
type BorrowerHandler struct {
	borrowerService *service.BorrowerService
	savingService   *service.SavingService
}

// NewBorrowerHandler creates a new BorrowerHandler
func NewBorrowerHandler(borrowerService *service.BorrowerService, savingService *service.SavingService) *BorrowerHandler {
	return &BorrowerHandler{borrowerService: borrowerService, savingService: savingService}
}

// RegisterBorrowerRequest represents the register borrower request body
type RegisterBorrowerRequest struct {
	BranchID int64   `json:"branchId" validate:"required,gt=0"`
	FullName string  `json:"fullName" validate:"required"`
	Business *string `json:"business,omitempty"`
	UniqueID string  `json:"uniqueId,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Status   string  `json:"status,omitempty"`
}

// UpdateBorrowerStatusRequest represents the status change request body
type UpdateBorrowerStatusRequest struct {
	Status string `json:"status"`
}

// RegisterBorrower handles POST /api/v1/borrowers
func (h *BorrowerHandler) RegisterBorrower(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req RegisterBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", nil)
	}

	borrower, err := h.borrowerService.RegisterBorrower(c.Request().Context(), organizationID, service.RegisterBorrowerInput{
		BranchID: req.BranchID,
		FullName: req.FullName,
		Business: req.Business,
		UniqueID: req.UniqueID,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Status:   domain.BorrowerStatus(req.Status),
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to register borrower")
	}

	log.Info().Int64("organization_id", organizationID).Int64("borrower_id", borrower.ID).Msg("Borrower registered")

	return c.JSON(http.StatusCreated, borrower)
}

// GetBorrowers handles GET /api/v1/borrowers
func (h *BorrowerHandler) GetBorrowers(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	borrowers, err := h.borrowerService.GetBorrowers(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list borrowers")
		return NewInternalError(c, "Failed to list borrowers")
	}

	return c.JSON(http.StatusOK, borrowers)
}

// GetBorrower handles GET /api/v1/borrowers/:id
func (h *BorrowerHandler) GetBorrower(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid borrower id", nil)
	}

	borrower, err := h.borrowerService.GetBorrower(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get borrower")
	}

	return c.JSON(http.StatusOK, borrower)
}

// GetProfile handles GET /api/v1/borrowers/:id/profile
func (h *BorrowerHandler) GetProfile(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid borrower id", nil)
	}

	profile, err := h.borrowerService.GetProfile(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get borrower profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetSavings handles GET /api/v1/borrowers/:id/savings
func (h *BorrowerHandler) GetSavings(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid borrower id", nil)
	}

	savings, err := h.savingService.GetAccountsByBorrower(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to list savings")
	}

	return c.JSON(http.StatusOK, savings)
}

// UpdateStatus handles PATCH /api/v1/borrowers/:id/status
func (h *BorrowerHandler) UpdateStatus(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid borrower id", nil)
	}

	var req UpdateBorrowerStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	borrower, err := h.borrowerService.UpdateStatus(c.Request().Context(), organizationID, id, domain.BorrowerStatus(req.Status))
	if err != nil {
		return respondDomainError(c, err, "Failed to update borrower status")
	}

	log.Info().Int64("organization_id", organizationID).Int64("borrower_id", id).Str("status", req.Status).Msg("Borrower status updated")

	return c.JSON(http.StatusOK, borrower)
}
