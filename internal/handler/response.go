package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/middleware"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://microfnance.app/errors/validation"
	ErrorTypeNotFound     = "https://microfnance.app/errors/not-found"
	ErrorTypeUnauthorized = "https://microfnance.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://microfnance.app/errors/forbidden"
	ErrorTypeConflict     = "https://microfnance.app/errors/conflict"
	ErrorTypeInternal     = "https://microfnance.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errs []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrOrganizationNotFound,
	domain.ErrBranchNotFound,
	domain.ErrOfficerNotFound,
	domain.ErrBorrowerNotFound,
	domain.ErrLoanNotFound,
	domain.ErrRepaymentNotFound,
	domain.ErrSheetNotFound,
	domain.ErrBatchNotFound,
	domain.ErrSavingNotFound,
	domain.ErrVendorNotFound,
	domain.ErrExpenseNotFound,
}

var conflictErrors = []error{
	domain.ErrBorrowerUniqueIDExists,
	domain.ErrSavingAccountExists,
}

var validationErrors = []error{
	domain.ErrInvalidAmount,
	domain.ErrNameRequired,
	domain.ErrNameTooLong,
	domain.ErrLoanPrincipalInvalid,
	domain.ErrLoanRateInvalid,
	domain.ErrLoanFeesInvalid,
	domain.ErrLoanPenaltyInvalid,
	domain.ErrLoanTenureInvalid,
	domain.ErrLoanStatusInvalid,
	domain.ErrLoanStatusTransition,
	domain.ErrLoanBorrowerInvalid,
	domain.ErrLoanDisbursedRequired,
	domain.ErrRepaymentLoanRequired,
	domain.ErrCollectionLoanRequired,
	domain.ErrPostingLoanRequired,
	domain.ErrSavingNameRequired,
	domain.ErrSavingAccountRequired,
	domain.ErrSavingStatusInvalid,
	domain.ErrBorrowerNameRequired,
	domain.ErrBorrowerStatusInvalid,
	domain.ErrExpenseCategoryInvalid,
	domain.ErrExpenseBranchRequired,
	domain.ErrOfficerUsernameRequired,
	domain.ErrOfficerBranchRequired,
}

// respondDomainError maps a service error to the matching problem response.
// Unrecognized errors become a 500 with the given fallback detail.
func respondDomainError(c echo.Context, err error, fallback string) error {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return NewNotFoundError(c, err.Error())
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return NewConflictError(c, err.Error())
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return NewValidationError(c, err.Error(), nil)
		}
	}
	return NewInternalError(c, fallback)
}

// pathID parses the named path parameter as a positive integer ID.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// scopeFromRequest builds the query scope from the authenticated organization
// and an optional branchId query parameter.
func scopeFromRequest(c echo.Context) (domain.Scope, error) {
	organizationID := middleware.GetOrganizationID(c)
	branchParam := c.QueryParam("branchId")
	if branchParam == "" {
		return domain.OrgScope(organizationID), nil
	}
	branchID, err := strconv.ParseInt(branchParam, 10, 64)
	if err != nil || branchID <= 0 {
		return domain.Scope{}, errors.New("invalid branchId")
	}
	return domain.BranchScope(organizationID, branchID), nil
}

// dateRangeFromRequest reads optional from/to query parameters in YYYY-MM-DD
// format. Missing parameters leave that bound open.
func dateRangeFromRequest(c echo.Context) (domain.DateRange, error) {
	var dr domain.DateRange
	if v := c.QueryParam("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return dr, errors.New("invalid from date")
		}
		dr.From = &from
	}
	if v := c.QueryParam("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return dr, errors.New("invalid to date")
		}
		dr.To = &to
	}
	return dr, nil
}
