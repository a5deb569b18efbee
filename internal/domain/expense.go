package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrExpenseCategoryInvalid = errors.New("unknown expense category")
	ErrExpenseBranchRequired  = errors.New("expense branch is required")
)

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "Rent"
	ExpenseCategorySalary      ExpenseCategory = "Salary"
	ExpenseCategoryFuel        ExpenseCategory = "Fuel"
	ExpenseCategoryUtilities   ExpenseCategory = "Utilities"
	ExpenseCategoryMaintenance ExpenseCategory = "Maintenance"
	ExpenseCategoryOther       ExpenseCategory = "Other"
)

// ExpenseCategories lists all categories in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryRent,
	ExpenseCategorySalary,
	ExpenseCategoryFuel,
	ExpenseCategoryUtilities,
	ExpenseCategoryMaintenance,
	ExpenseCategoryOther,
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is an operating cost recorded against a branch, optionally tied to
// a vendor.
type Expense struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organizationId"`
	BranchID       int64           `json:"branchId"`
	VendorID       *int64          `json:"vendorId,omitempty"`
	Category       ExpenseCategory `json:"category"`
	Description    *string         `json:"description,omitempty"`
	Amount         Money           `json:"amount"`
	Date           time.Time       `json:"date"`
	RecordedBy     int64           `json:"recordedBy"` // officer id
	CreatedAt      time.Time       `json:"createdAt"`
}

func (e *Expense) Validate() error {
	if e.BranchID <= 0 {
		return ErrExpenseBranchRequired
	}
	if !e.Category.Valid() {
		return ErrExpenseCategoryInvalid
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ExpenseRepository provides persistence for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) (*Expense, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Expense, error)
	ListByScope(ctx context.Context, scope Scope, dateRange DateRange) ([]*Expense, error)
	Update(ctx context.Context, expense *Expense) (*Expense, error)
}
