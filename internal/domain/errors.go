package domain

import "errors"

// Domain errors shared across entities
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrOfficerNotFound      = errors.New("loan officer not found")
	ErrBorrowerNotFound     = errors.New("borrower not found")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrRepaymentNotFound    = errors.New("repayment not found")
	ErrSheetNotFound        = errors.New("collection sheet not found")
	ErrBatchNotFound        = errors.New("posting batch not found")
	ErrSavingNotFound       = errors.New("saving account not found")
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrExpenseNotFound      = errors.New("expense not found")

	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name must be 200 characters or less")
)

// MaxNameLength bounds entity display names.
const MaxNameLength = 200
