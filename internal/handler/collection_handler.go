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

// CollectionHandler handles collection sheet HTTP requests
type CollectionHandler struct {
	collectionService *service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// CreateSheetRequest represents the create sheet request body
type CreateSheetRequest struct {
	Date string `json:"date"`
}

// RecordCollectionRequest represents a collection entry on a sheet
type RecordCollectionRequest struct {
	LoanID int64  `json:"loanId"`
	Amount string `json:"amount"`
}

// CreateSheet handles POST /api/v1/collection-sheets
func (h *CollectionHandler) CreateSheet(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)
	officerID := middleware.GetOfficerID(c)

	var req CreateSheetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date := time.Now().UTC()
	if req.Date != "" {
		var err error
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	sheet, err := h.collectionService.CreateSheet(c.Request().Context(), organizationID, officerID, date)
	if err != nil {
		return respondDomainError(c, err, "Failed to create collection sheet")
	}

	log.Info().Int64("organization_id", organizationID).Int64("sheet_id", sheet.ID).Msg("Collection sheet created")

	return c.JSON(http.StatusCreated, sheet)
}

// GetSheets handles GET /api/v1/collection-sheets
func (h *CollectionHandler) GetSheets(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	sheets, err := h.collectionService.GetSheets(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list collection sheets")
		return NewInternalError(c, "Failed to list collection sheets")
	}

	return c.JSON(http.StatusOK, sheets)
}

// GetSheet handles GET /api/v1/collection-sheets/:id
func (h *CollectionHandler) GetSheet(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid sheet id", nil)
	}

	detail, err := h.collectionService.GetSheetDetail(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get collection sheet")
	}

	return c.JSON(http.StatusOK, detail)
}

// RecordCollection handles POST /api/v1/collection-sheets/:id/items
func (h *CollectionHandler) RecordCollection(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	sheetID, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid sheet id", nil)
	}

	var req RecordCollectionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := domain.MoneyFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.collectionService.RecordCollection(c.Request().Context(), organizationID, sheetID, req.LoanID, amount)
	if err != nil {
		return respondDomainError(c, err, "Failed to record collection")
	}

	log.Info().
		Int64("organization_id", organizationID).
		Int64("sheet_id", sheetID).
		Int64("loan_id", req.LoanID).
		Str("amount", amount.String()).
		Msg("Collection recorded")

	return c.JSON(http.StatusCreated, item)
}
