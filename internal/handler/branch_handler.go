package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
)

// BranchHandler handles branch and officer HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// CreateBranchRequest represents the create branch request body
type CreateBranchRequest struct {
	Name string `json:"name"`
}

// CreateOfficerRequest represents the create officer request body
type CreateOfficerRequest struct {
	BranchID int64  `json:"branchId" validate:"gt=0"`
	Username string `json:"username" validate:"required"`
}

// OfficerCreatedResponse carries the officer together with the freshly
// issued API key. The key is only ever returned here.
type OfficerCreatedResponse struct {
	Officer *domain.LoanOfficer `json:"officer"`
	APIKey  string              `json:"apiKey"`
}

// CreateBranch handles POST /api/v1/branches
func (h *BranchHandler) CreateBranch(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req CreateBranchRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	branch, err := h.branchService.CreateBranch(c.Request().Context(), organizationID, req.Name)
	if err != nil {
		return respondDomainError(c, err, "Failed to create branch")
	}

	log.Info().Int64("organization_id", organizationID).Int64("branch_id", branch.ID).Msg("Branch created")

	return c.JSON(http.StatusCreated, branch)
}

// GetBranches handles GET /api/v1/branches
func (h *BranchHandler) GetBranches(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	branches, err := h.branchService.GetBranches(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list branches")
		return NewInternalError(c, "Failed to list branches")
	}

	return c.JSON(http.StatusOK, branches)
}

// GetBranch handles GET /api/v1/branches/:id
func (h *BranchHandler) GetBranch(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid branch id", nil)
	}

	branch, err := h.branchService.GetBranch(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get branch")
	}

	return c.JSON(http.StatusOK, branch)
}

// CreateOfficer handles POST /api/v1/officers
func (h *BranchHandler) CreateOfficer(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req CreateOfficerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", nil)
	}

	officer, err := h.branchService.CreateOfficer(c.Request().Context(), organizationID, req.BranchID, req.Username)
	if err != nil {
		return respondDomainError(c, err, "Failed to create officer")
	}

	log.Info().Int64("organization_id", organizationID).Int64("officer_id", officer.ID).Str("username", officer.Username).Msg("Officer created")

	return c.JSON(http.StatusCreated, OfficerCreatedResponse{
		Officer: officer,
		APIKey:  officer.APIKey,
	})
}

// GetOfficers handles GET /api/v1/officers
func (h *BranchHandler) GetOfficers(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	officers, err := h.branchService.GetOfficers(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list officers")
		return NewInternalError(c, "Failed to list officers")
	}

	return c.JSON(http.StatusOK, officers)
}

// GetOfficer handles GET /api/v1/officers/:id
func (h *BranchHandler) GetOfficer(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid officer id", nil)
	}

	officer, err := h.branchService.GetOfficer(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get officer")
	}

	return c.JSON(http.StatusOK, officer)
}
