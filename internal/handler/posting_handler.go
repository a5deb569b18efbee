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

// PostingHandler handles posting batch HTTP requests
type PostingHandler struct {
	postingService *service.PostingService
}

// NewPostingHandler creates a new PostingHandler
func NewPostingHandler(postingService *service.PostingService) *PostingHandler {
	return &PostingHandler{postingService: postingService}
}

// CreateBatchRequest represents the create batch request body
type CreateBatchRequest struct {
	Date string `json:"date"`
}

// AddPostingItemRequest represents a ledger adjustment inside a batch.
// Negative amounts are allowed for corrections.
type AddPostingItemRequest struct {
	LoanID  int64   `json:"loanId"`
	Amount  string  `json:"amount"`
	Remarks *string `json:"remarks,omitempty"`
}

// CreateBatch handles POST /api/v1/posting-batches
func (h *PostingHandler) CreateBatch(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)
	officerID := middleware.GetOfficerID(c)

	var req CreateBatchRequest
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

	batch, err := h.postingService.CreateBatch(c.Request().Context(), organizationID, officerID, date)
	if err != nil {
		return respondDomainError(c, err, "Failed to create posting batch")
	}

	log.Info().Int64("organization_id", organizationID).Int64("batch_id", batch.ID).Msg("Posting batch created")

	return c.JSON(http.StatusCreated, batch)
}

// GetBatches handles GET /api/v1/posting-batches
func (h *PostingHandler) GetBatches(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	batches, err := h.postingService.GetBatches(c.Request().Context(), organizationID)
	if err != nil {
		log.Error().Err(err).Int64("organization_id", organizationID).Msg("Failed to list posting batches")
		return NewInternalError(c, "Failed to list posting batches")
	}

	return c.JSON(http.StatusOK, batches)
}

// GetBatch handles GET /api/v1/posting-batches/:id
func (h *PostingHandler) GetBatch(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid batch id", nil)
	}

	detail, err := h.postingService.GetBatchDetail(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get posting batch")
	}

	return c.JSON(http.StatusOK, detail)
}

// AddItem handles POST /api/v1/posting-batches/:id/items
func (h *PostingHandler) AddItem(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	batchID, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid batch id", nil)
	}

	var req AddPostingItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := domain.MoneyFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.postingService.AddItem(c.Request().Context(), organizationID, batchID, req.LoanID, amount, req.Remarks)
	if err != nil {
		return respondDomainError(c, err, "Failed to add posting item")
	}

	log.Info().
		Int64("organization_id", organizationID).
		Int64("batch_id", batchID).
		Int64("loan_id", req.LoanID).
		Str("amount", amount.String()).
		Msg("Posting item added")

	return c.JSON(http.StatusCreated, item)
}
