package service

import (
	"context"
	"strings"
	"time"

	"github.com/sparklweb1988/microfnance/internal/domain"
	"github.com/sparklweb1988/microfnance/internal/websocket"
)

// ExpenseService manages branch operating expenses and their vendors.
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	vendorRepo  domain.VendorRepository
	branchRepo  domain.BranchRepository
	publisher   websocket.EventPublisher
}

func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	vendorRepo domain.VendorRepository,
	branchRepo domain.BranchRepository,
	publisher websocket.EventPublisher,
) *ExpenseService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		vendorRepo:  vendorRepo,
		branchRepo:  branchRepo,
		publisher:   publisher,
	}
}

// CreateVendorInput carries the fields for a new vendor.
type CreateVendorInput struct {
	Name  string
	Phone *string
	Email *string
}

func (s *ExpenseService) CreateVendor(ctx context.Context, organizationID int64, input CreateVendorInput) (*domain.Vendor, error) {
	vendor := &domain.Vendor{
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(input.Name),
		Phone:          input.Phone,
		Email:          input.Email,
		CreatedAt:      time.Now().UTC(),
	}
	if err := vendor.Validate(); err != nil {
		return nil, err
	}
	return s.vendorRepo.Create(ctx, vendor)
}

func (s *ExpenseService) GetVendors(ctx context.Context, organizationID int64) ([]*domain.Vendor, error) {
	return s.vendorRepo.ListByOrganization(ctx, organizationID)
}

// RecordExpenseInput carries the fields for a new expense.
type RecordExpenseInput struct {
	BranchID    int64
	VendorID    *int64
	Category    domain.ExpenseCategory
	Description *string
	Amount      domain.Money
	Date        time.Time
	RecordedBy  int64
}

func (s *ExpenseService) RecordExpense(ctx context.Context, organizationID int64, input RecordExpenseInput) (*domain.Expense, error) {
	if _, err := s.branchRepo.GetByID(ctx, organizationID, input.BranchID); err != nil {
		return nil, err
	}
	if input.VendorID != nil {
		if _, err := s.vendorRepo.GetByID(ctx, organizationID, *input.VendorID); err != nil {
			return nil, err
		}
	}

	expense := &domain.Expense{
		OrganizationID: organizationID,
		BranchID:       input.BranchID,
		VendorID:       input.VendorID,
		Category:       input.Category,
		Description:    input.Description,
		Amount:         input.Amount,
		Date:           input.Date,
		RecordedBy:     input.RecordedBy,
		CreatedAt:      time.Now().UTC(),
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organizationID, websocket.ExpenseCreated(created))
	return created, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, organizationID, id int64) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, organizationID, id)
}

func (s *ExpenseService) GetExpenses(ctx context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.Expense, error) {
	return s.expenseRepo.ListByScope(ctx, scope, dateRange)
}

// UpdateExpenseInput carries partial edits to an expense.
type UpdateExpenseInput struct {
	VendorID    *int64
	Category    *domain.ExpenseCategory
	Description *string
	Amount      *domain.Money
	Date        *time.Time
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, organizationID, id int64, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if input.VendorID != nil {
		if _, err := s.vendorRepo.GetByID(ctx, organizationID, *input.VendorID); err != nil {
			return nil, err
		}
		expense.VendorID = input.VendorID
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	return s.expenseRepo.Update(ctx, expense)
}
