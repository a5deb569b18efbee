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

// RepaymentHandler handles repayment-related HTTP requests
type RepaymentHandler struct {
	repaymentService *service.RepaymentService
}

// NewRepaymentHandler creates a new RepaymentHandler
func NewRepaymentHandler(repaymentService *service.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

// PostRepaymentRequest represents the post repayment request body
type PostRepaymentRequest struct {
	Amount string `json:"amount"`
	Date   string `json:"date,omitempty"`
}

// PostRepaymentResponse carries the new repayment and the resynced loan
type PostRepaymentResponse struct {
	Repayment *domain.Repayment  `json:"repayment"`
	Loan      LoanDetailResponse `json:"loan"`
}

// PostRepayment handles POST /api/v1/loans/:id/repayments
func (h *RepaymentHandler) PostRepayment(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)
	officerID := middleware.GetOfficerID(c)

	loanID, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	var req PostRepaymentRequest
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

	repayment, loan, err := h.repaymentService.PostRepayment(c.Request().Context(), organizationID, service.PostRepaymentInput{
		LoanID:   loanID,
		Amount:   amount,
		Date:     date,
		PostedBy: officerID,
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to post repayment")
	}

	log.Info().
		Int64("organization_id", organizationID).
		Int64("loan_id", loanID).
		Str("amount", amount.String()).
		Msg("Repayment posted")

	return c.JSON(http.StatusCreated, PostRepaymentResponse{
		Repayment: repayment,
		Loan:      toLoanDetail(loan),
	})
}

// GetRepayments handles GET /api/v1/loans/:id/repayments
func (h *RepaymentHandler) GetRepayments(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	loanID, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	repayments, err := h.repaymentService.GetRepayments(c.Request().Context(), organizationID, loanID)
	if err != nil {
		return respondDomainError(c, err, "Failed to list repayments")
	}

	return c.JSON(http.StatusOK, repayments)
}

// RecomputePaid handles POST /api/v1/loans/:id/recompute-paid
func (h *RepaymentHandler) RecomputePaid(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	loanID, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	loan, err := h.repaymentService.RecomputePaid(c.Request().Context(), organizationID, loanID)
	if err != nil {
		return respondDomainError(c, err, "Failed to recompute loan")
	}

	log.Info().Int64("organization_id", organizationID).Int64("loan_id", loanID).Msg("Loan paid total recomputed")

	return c.JSON(http.StatusOK, toLoanDetail(loan))
}
