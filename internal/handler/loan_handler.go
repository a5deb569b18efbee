package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/export"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/service"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents the create loan request body
type CreateLoanRequest struct {
	BranchID      *int64  `json:"branchId,omitempty"`
	BorrowerID    *int64  `json:"borrowerId,omitempty"`
	OfficerID     *int64  `json:"officerId,omitempty"`
	Principal     string  `json:"principal" validate:"required"`
	InterestRate  string  `json:"interestRate" validate:"required"`
	Fees          *string `json:"fees,omitempty"`
	Penalty       *string `json:"penalty,omitempty"`
	TenureDays    int32   `json:"tenureDays" validate:"min=1"`
	DisbursedDate string  `json:"disbursedDate" validate:"required"`
}

// UpdateLoanRequest represents the update loan request body. Omitted fields
// keep their current value.
type UpdateLoanRequest struct {
	BranchID      *int64  `json:"branchId,omitempty"`
	BorrowerID    *int64  `json:"borrowerId,omitempty"`
	OfficerID     *int64  `json:"officerId,omitempty"`
	Principal     *string `json:"principal,omitempty"`
	InterestRate  *string `json:"interestRate,omitempty"`
	Fees          *string `json:"fees,omitempty"`
	Penalty       *string `json:"penalty,omitempty"`
	TenureDays    *int32  `json:"tenureDays,omitempty"`
	DisbursedDate *string `json:"disbursedDate,omitempty"`
}

// UpdateLoanStatusRequest represents the status change request body
type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
}

// LoanDetailResponse is a loan with its derived amounts
type LoanDetailResponse struct {
	*domain.Loan
	Interest           domain.Money `json:"interest"`
	TotalDue           domain.Money `json:"totalDue"`
	OutstandingBalance domain.Money `json:"outstandingBalance"`
}

func toLoanDetail(loan *domain.Loan) LoanDetailResponse {
	return LoanDetailResponse{
		Loan:               loan,
		Interest:           loan.Interest(),
		TotalDue:           loan.TotalDue(),
		OutstandingBalance: loan.OutstandingBalance(),
	}
}

func parseMoneyField(c echo.Context, field, value string) (domain.Money, error) {
	m, err := domain.MoneyFromString(value)
	if err != nil {
		return domain.Money{}, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: field, Message: "Must be a valid decimal number"},
		})
	}
	return m, nil
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, "Validation failed", nil)
	}

	principal, err := domain.MoneyFromString(req.Principal)
	if err != nil {
		return NewValidationError(c, "Invalid principal", []ValidationError{
			{Field: "principal", Message: "Must be a valid decimal number"},
		})
	}

	rate, err := decimal.NewFromString(req.InterestRate)
	if err != nil {
		return NewValidationError(c, "Invalid interest rate", []ValidationError{
			{Field: "interestRate", Message: "Must be a valid decimal number"},
		})
	}

	fees := domain.ZeroMoney()
	if req.Fees != nil {
		if fees, err = domain.MoneyFromString(*req.Fees); err != nil {
			return NewValidationError(c, "Invalid fees", []ValidationError{
				{Field: "fees", Message: "Must be a valid decimal number"},
			})
		}
	}

	penalty := domain.ZeroMoney()
	if req.Penalty != nil {
		if penalty, err = domain.MoneyFromString(*req.Penalty); err != nil {
			return NewValidationError(c, "Invalid penalty", []ValidationError{
				{Field: "penalty", Message: "Must be a valid decimal number"},
			})
		}
	}

	disbursed, err := time.Parse("2006-01-02", req.DisbursedDate)
	if err != nil {
		return NewValidationError(c, "Invalid disbursed date", []ValidationError{
			{Field: "disbursedDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	loan, err := h.loanService.CreateLoan(c.Request().Context(), organizationID, service.CreateLoanInput{
		BranchID:      req.BranchID,
		BorrowerID:    req.BorrowerID,
		OfficerID:     req.OfficerID,
		Principal:     principal,
		InterestRate:  rate,
		Fees:          fees,
		Penalty:       penalty,
		TenureDays:    req.TenureDays,
		DisbursedDate: disbursed,
	})
	if err != nil {
		return respondDomainError(c, err, "Failed to create loan")
	}

	log.Info().Int64("organization_id", organizationID).Int64("loan_id", loan.ID).Msg("Loan disbursed")

	return c.JSON(http.StatusCreated, toLoanDetail(loan))
}

// GetLoans handles GET /api/v1/loans
func (h *LoanHandler) GetLoans(c echo.Context) error {
	scope, err := scopeFromRequest(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	var loans []*domain.Loan
	if statusParam := c.QueryParam("status"); statusParam != "" {
		status := domain.LoanStatus(statusParam)
		if !status.Valid() {
			return NewValidationError(c, "Invalid status parameter", []ValidationError{
				{Field: "status", Message: "Must be Active, Overdue, PAR30 or Closed"},
			})
		}
		loans, err = h.loanService.GetLoansByStatus(c.Request().Context(), scope, status)
	} else {
		loans, err = h.loanService.GetLoans(c.Request().Context(), scope)
	}
	if err != nil {
		log.Error().Err(err).Int64("organization_id", scope.OrganizationID).Msg("Failed to list loans")
		return NewInternalError(c, "Failed to list loans")
	}

	if wantsXLSX(c) {
		data, err := export.LoanPortfolioWorkbook(loans)
		return sendWorkbook(c, "loans.xlsx", data, err)
	}

	response := make([]LoanDetailResponse, len(loans))
	for i, loan := range loans {
		response[i] = toLoanDetail(loan)
	}

	return c.JSON(http.StatusOK, response)
}

// GetLoan handles GET /api/v1/loans/:id
func (h *LoanHandler) GetLoan(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	loan, err := h.loanService.GetLoan(c.Request().Context(), organizationID, id)
	if err != nil {
		return respondDomainError(c, err, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, toLoanDetail(loan))
}

// UpdateLoan handles PUT /api/v1/loans/:id
func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	var req UpdateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateLoanInput{
		BranchID:   req.BranchID,
		BorrowerID: req.BorrowerID,
		OfficerID:  req.OfficerID,
		TenureDays: req.TenureDays,
	}

	if req.Principal != nil {
		principal, err := domain.MoneyFromString(*req.Principal)
		if err != nil {
			return NewValidationError(c, "Invalid principal", []ValidationError{
				{Field: "principal", Message: "Must be a valid decimal number"},
			})
		}
		input.Principal = &principal
	}
	if req.InterestRate != nil {
		rate, err := decimal.NewFromString(*req.InterestRate)
		if err != nil {
			return NewValidationError(c, "Invalid interest rate", []ValidationError{
				{Field: "interestRate", Message: "Must be a valid decimal number"},
			})
		}
		input.InterestRate = &rate
	}
	if req.Fees != nil {
		fees, err := domain.MoneyFromString(*req.Fees)
		if err != nil {
			return NewValidationError(c, "Invalid fees", []ValidationError{
				{Field: "fees", Message: "Must be a valid decimal number"},
			})
		}
		input.Fees = &fees
	}
	if req.Penalty != nil {
		penalty, err := domain.MoneyFromString(*req.Penalty)
		if err != nil {
			return NewValidationError(c, "Invalid penalty", []ValidationError{
				{Field: "penalty", Message: "Must be a valid decimal number"},
			})
		}
		input.Penalty = &penalty
	}
	if req.DisbursedDate != nil {
		disbursed, err := time.Parse("2006-01-02", *req.DisbursedDate)
		if err != nil {
			return NewValidationError(c, "Invalid disbursed date", []ValidationError{
				{Field: "disbursedDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.DisbursedDate = &disbursed
	}

	loan, err := h.loanService.UpdateLoan(c.Request().Context(), organizationID, id, input)
	if err != nil {
		return respondDomainError(c, err, "Failed to update loan")
	}

	log.Info().Int64("organization_id", organizationID).Int64("loan_id", id).Msg("Loan updated")

	return c.JSON(http.StatusOK, toLoanDetail(loan))
}

// UpdateStatus handles PATCH /api/v1/loans/:id/status
func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	organizationID := middleware.GetOrganizationID(c)

	id, err := pathID(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	var req UpdateLoanStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	loan, err := h.loanService.UpdateStatus(c.Request().Context(), organizationID, id, domain.LoanStatus(req.Status))
	if err != nil {
		return respondDomainError(c, err, "Failed to update loan status")
	}

	log.Info().Int64("organization_id", organizationID).Int64("loan_id", id).Str("status", req.Status).Msg("Loan status updated")

	return c.JSON(http.StatusOK, toLoanDetail(loan))
}
