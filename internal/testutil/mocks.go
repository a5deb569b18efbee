package testutil

import (
	"context"
	"sort"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// In-memory repository mocks used by service and handler tests. The Tx
// variants ignore the transaction handle; atomicity is exercised against the
// real repositories, the mocks only reproduce the data semantics.

// MockOrganizationRepository is an in-memory domain.OrganizationRepository.
type MockOrganizationRepository struct {
	Organizations map[int64]*domain.Organization
	nextID        int64
}

func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{Organizations: make(map[int64]*domain.Organization)}
}

func (m *MockOrganizationRepository) Create(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	m.nextID++
	org.ID = m.nextID
	m.Organizations[org.ID] = org
	return org, nil
}

func (m *MockOrganizationRepository) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	if org, ok := m.Organizations[id]; ok {
		return org, nil
	}
	return nil, domain.ErrOrganizationNotFound
}

// MockBranchRepository is an in-memory domain.BranchRepository.
type MockBranchRepository struct {
	Branches map[int64]*domain.Branch
	nextID   int64
}

func NewMockBranchRepository() *MockBranchRepository {
	return &MockBranchRepository{Branches: make(map[int64]*domain.Branch)}
}

func (m *MockBranchRepository) AddBranch(b *domain.Branch) {
	if b.ID > m.nextID {
		m.nextID = b.ID
	}
	m.Branches[b.ID] = b
}

func (m *MockBranchRepository) Create(_ context.Context, branch *domain.Branch) (*domain.Branch, error) {
	m.nextID++
	branch.ID = m.nextID
	m.Branches[branch.ID] = branch
	return branch, nil
}

func (m *MockBranchRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Branch, error) {
	if b, ok := m.Branches[id]; ok && b.OrganizationID == organizationID {
		return b, nil
	}
	return nil, domain.ErrBranchNotFound
}

func (m *MockBranchRepository) ListByOrganization(_ context.Context, organizationID int64) ([]*domain.Branch, error) {
	var result []*domain.Branch
	for _, b := range m.Branches {
		if b.OrganizationID == organizationID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockOfficerRepository is an in-memory domain.OfficerRepository.
type MockOfficerRepository struct {
	Officers map[int64]*domain.LoanOfficer
	nextID   int64
}

func NewMockOfficerRepository() *MockOfficerRepository {
	return &MockOfficerRepository{Officers: make(map[int64]*domain.LoanOfficer)}
}

func (m *MockOfficerRepository) AddOfficer(o *domain.LoanOfficer) {
	if o.ID > m.nextID {
		m.nextID = o.ID
	}
	m.Officers[o.ID] = o
}

func (m *MockOfficerRepository) Create(_ context.Context, officer *domain.LoanOfficer) (*domain.LoanOfficer, error) {
	m.nextID++
	officer.ID = m.nextID
	m.Officers[officer.ID] = officer
	return officer, nil
}

func (m *MockOfficerRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.LoanOfficer, error) {
	if o, ok := m.Officers[id]; ok && o.OrganizationID == organizationID {
		return o, nil
	}
	return nil, domain.ErrOfficerNotFound
}

func (m *MockOfficerRepository) GetByAPIKey(_ context.Context, apiKey string) (*domain.LoanOfficer, error) {
	for _, o := range m.Officers {
		if o.APIKey == apiKey {
			return o, nil
		}
	}
	return nil, domain.ErrOfficerNotFound
}

func (m *MockOfficerRepository) ListByOrganization(_ context.Context, organizationID int64) ([]*domain.LoanOfficer, error) {
	var result []*domain.LoanOfficer
	for _, o := range m.Officers {
		if o.OrganizationID == organizationID {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockBorrowerRepository is an in-memory domain.BorrowerRepository.
type MockBorrowerRepository struct {
	Borrowers map[int64]*domain.Borrower
	nextID    int64
}

func NewMockBorrowerRepository() *MockBorrowerRepository {
	return &MockBorrowerRepository{Borrowers: make(map[int64]*domain.Borrower)}
}

func (m *MockBorrowerRepository) AddBorrower(b *domain.Borrower) {
	if b.ID > m.nextID {
		m.nextID = b.ID
	}
	m.Borrowers[b.ID] = b
}

func (m *MockBorrowerRepository) Create(_ context.Context, borrower *domain.Borrower) (*domain.Borrower, error) {
	for _, b := range m.Borrowers {
		if b.UniqueID == borrower.UniqueID {
			return nil, domain.ErrBorrowerUniqueIDExists
		}
	}
	m.nextID++
	borrower.ID = m.nextID
	m.Borrowers[borrower.ID] = borrower
	return borrower, nil
}

func (m *MockBorrowerRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Borrower, error) {
	if b, ok := m.Borrowers[id]; ok && b.OrganizationID == organizationID {
		return b, nil
	}
	return nil, domain.ErrBorrowerNotFound
}

func (m *MockBorrowerRepository) ListByOrganization(_ context.Context, organizationID int64) ([]*domain.Borrower, error) {
	var result []*domain.Borrower
	for _, b := range m.Borrowers {
		if b.OrganizationID == organizationID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockBorrowerRepository) CountByOrganization(_ context.Context, organizationID int64) (int64, error) {
	var count int64
	for _, b := range m.Borrowers {
		if b.OrganizationID == organizationID {
			count++
		}
	}
	return count, nil
}

func (m *MockBorrowerRepository) Update(_ context.Context, borrower *domain.Borrower) (*domain.Borrower, error) {
	existing, ok := m.Borrowers[borrower.ID]
	if !ok || existing.OrganizationID != borrower.OrganizationID {
		return nil, domain.ErrBorrowerNotFound
	}
	m.Borrowers[borrower.ID] = borrower
	return borrower, nil
}

// MockLoanRepository is an in-memory domain.LoanRepository.
type MockLoanRepository struct {
	Loans  map[int64]*domain.Loan
	nextID int64
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{Loans: make(map[int64]*domain.Loan)}
}

func (m *MockLoanRepository) AddLoan(l *domain.Loan) {
	if l.ID > m.nextID {
		m.nextID = l.ID
	}
	m.Loans[l.ID] = l
}

func (m *MockLoanRepository) Create(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	m.nextID++
	loan.ID = m.nextID
	m.Loans[loan.ID] = loan
	return loan, nil
}

func (m *MockLoanRepository) get(organizationID, id int64) (*domain.Loan, error) {
	if l, ok := m.Loans[id]; ok && l.OrganizationID == organizationID {
		return l, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Loan, error) {
	return m.get(organizationID, id)
}

func (m *MockLoanRepository) GetForUpdateTx(_ interface{}, organizationID, id int64) (*domain.Loan, error) {
	return m.get(organizationID, id)
}

func (m *MockLoanRepository) inScope(l *domain.Loan, scope domain.Scope) bool {
	if l.OrganizationID != scope.OrganizationID {
		return false
	}
	if scope.BranchID != nil {
		if l.BranchID == nil || *l.BranchID != *scope.BranchID {
			return false
		}
	}
	return true
}

func (m *MockLoanRepository) ListByScope(_ context.Context, scope domain.Scope) ([]*domain.Loan, error) {
	var result []*domain.Loan
	for _, l := range m.Loans {
		if m.inScope(l, scope) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, scope domain.Scope, status domain.LoanStatus) ([]*domain.Loan, error) {
	all, _ := m.ListByScope(ctx, scope)
	var result []*domain.Loan
	for _, l := range all {
		if l.Status == status {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *MockLoanRepository) ListByBorrower(_ context.Context, organizationID, borrowerID int64) ([]*domain.Loan, error) {
	var result []*domain.Loan
	for _, l := range m.Loans {
		if l.OrganizationID == organizationID && l.BorrowerID != nil && *l.BorrowerID == borrowerID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockLoanRepository) Update(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if _, err := m.get(loan.OrganizationID, loan.ID); err != nil {
		return nil, err
	}
	m.Loans[loan.ID] = loan
	return loan, nil
}

func (m *MockLoanRepository) UpdatePaymentTx(_ interface{}, loan *domain.Loan) error {
	existing, err := m.get(loan.OrganizationID, loan.ID)
	if err != nil {
		return err
	}
	existing.Paid = loan.Paid
	existing.Status = loan.Status
	existing.LastPayment = loan.LastPayment
	return nil
}

// MockRepaymentRepository is an in-memory domain.RepaymentRepository. It
// shares the loan repository so scope filtering can join through loans.
type MockRepaymentRepository struct {
	Repayments []*domain.Repayment
	LoanRepo   *MockLoanRepository
	nextID     int64
}

func NewMockRepaymentRepository(loanRepo *MockLoanRepository) *MockRepaymentRepository {
	return &MockRepaymentRepository{LoanRepo: loanRepo}
}

func (m *MockRepaymentRepository) AddRepayment(r *domain.Repayment) {
	if r.ID > m.nextID {
		m.nextID = r.ID
	}
	m.Repayments = append(m.Repayments, r)
}

func (m *MockRepaymentRepository) CreateTx(_ interface{}, rep *domain.Repayment) (*domain.Repayment, error) {
	m.nextID++
	rep.ID = m.nextID
	m.Repayments = append(m.Repayments, rep)
	return rep, nil
}

func (m *MockRepaymentRepository) SumAmountByLoanTx(_ interface{}, loanID int64) (domain.Money, error) {
	var amounts []domain.Money
	for _, r := range m.Repayments {
		if r.LoanID == loanID {
			amounts = append(amounts, r.Amount)
		}
	}
	return domain.SumMoney(amounts), nil
}

func (m *MockRepaymentRepository) ListByLoan(_ context.Context, organizationID, loanID int64) ([]*domain.Repayment, error) {
	if _, err := m.LoanRepo.get(organizationID, loanID); err != nil {
		return nil, err
	}
	var result []*domain.Repayment
	for _, r := range m.Repayments {
		if r.LoanID == loanID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *MockRepaymentRepository) ListByScope(_ context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.Repayment, error) {
	var result []*domain.Repayment
	for _, r := range m.Repayments {
		loan, ok := m.LoanRepo.Loans[r.LoanID]
		if !ok || !m.LoanRepo.inScope(loan, scope) {
			continue
		}
		if !dateRange.Contains(r.Date) {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// MockCollectionRepository is an in-memory domain.CollectionRepository.
type MockCollectionRepository struct {
	Sheets      map[int64]*domain.CollectionSheet
	Items       []*domain.CollectionItem
	OfficerRepo *MockOfficerRepository
	LoanRepo    *MockLoanRepository
	nextSheetID int64
	nextItemID  int64
}

func NewMockCollectionRepository(officerRepo *MockOfficerRepository, loanRepo *MockLoanRepository) *MockCollectionRepository {
	return &MockCollectionRepository{
		Sheets:      make(map[int64]*domain.CollectionSheet),
		OfficerRepo: officerRepo,
		LoanRepo:    loanRepo,
	}
}

func (m *MockCollectionRepository) sheetInOrg(sheet *domain.CollectionSheet, organizationID int64) bool {
	officer, ok := m.OfficerRepo.Officers[sheet.OfficerID]
	return ok && officer.OrganizationID == organizationID
}

func (m *MockCollectionRepository) CreateSheet(_ context.Context, sheet *domain.CollectionSheet) (*domain.CollectionSheet, error) {
	m.nextSheetID++
	sheet.ID = m.nextSheetID
	m.Sheets[sheet.ID] = sheet
	return sheet, nil
}

func (m *MockCollectionRepository) GetSheet(_ context.Context, organizationID, id int64) (*domain.CollectionSheet, error) {
	if s, ok := m.Sheets[id]; ok && m.sheetInOrg(s, organizationID) {
		return s, nil
	}
	return nil, domain.ErrSheetNotFound
}

func (m *MockCollectionRepository) ListSheets(_ context.Context, organizationID int64) ([]*domain.CollectionSheet, error) {
	var result []*domain.CollectionSheet
	for _, s := range m.Sheets {
		if m.sheetInOrg(s, organizationID) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCollectionRepository) CreateItemTx(_ interface{}, item *domain.CollectionItem) (*domain.CollectionItem, error) {
	m.nextItemID++
	item.ID = m.nextItemID
	m.Items = append(m.Items, item)
	return item, nil
}

func (m *MockCollectionRepository) ListItemsBySheet(_ context.Context, organizationID, sheetID int64) ([]*domain.CollectionItem, error) {
	sheet, ok := m.Sheets[sheetID]
	if !ok || !m.sheetInOrg(sheet, organizationID) {
		return nil, domain.ErrSheetNotFound
	}
	var result []*domain.CollectionItem
	for _, item := range m.Items {
		if item.SheetID == sheetID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockCollectionRepository) ListItemsByScope(_ context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.CollectionItem, error) {
	var result []*domain.CollectionItem
	for _, item := range m.Items {
		loan, ok := m.LoanRepo.Loans[item.LoanID]
		if !ok || !m.LoanRepo.inScope(loan, scope) {
			continue
		}
		sheet, ok := m.Sheets[item.SheetID]
		if ok && !dateRange.Contains(sheet.Date) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// MockPostingRepository is an in-memory domain.PostingRepository.
type MockPostingRepository struct {
	Batches     map[int64]*domain.PostingBatch
	Items       []*domain.PostingItem
	OfficerRepo *MockOfficerRepository
	nextBatchID int64
	nextItemID  int64
}

func NewMockPostingRepository(officerRepo *MockOfficerRepository) *MockPostingRepository {
	return &MockPostingRepository{
		Batches:     make(map[int64]*domain.PostingBatch),
		OfficerRepo: officerRepo,
	}
}

func (m *MockPostingRepository) batchInOrg(batch *domain.PostingBatch, organizationID int64) bool {
	officer, ok := m.OfficerRepo.Officers[batch.OfficerID]
	return ok && officer.OrganizationID == organizationID
}

func (m *MockPostingRepository) CreateBatch(_ context.Context, batch *domain.PostingBatch) (*domain.PostingBatch, error) {
	m.nextBatchID++
	batch.ID = m.nextBatchID
	m.Batches[batch.ID] = batch
	return batch, nil
}

func (m *MockPostingRepository) GetBatch(_ context.Context, organizationID, id int64) (*domain.PostingBatch, error) {
	if b, ok := m.Batches[id]; ok && m.batchInOrg(b, organizationID) {
		return b, nil
	}
	return nil, domain.ErrBatchNotFound
}

func (m *MockPostingRepository) ListBatches(_ context.Context, organizationID int64) ([]*domain.PostingBatch, error) {
	var result []*domain.PostingBatch
	for _, b := range m.Batches {
		if m.batchInOrg(b, organizationID) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockPostingRepository) CreateItem(_ context.Context, item *domain.PostingItem) (*domain.PostingItem, error) {
	m.nextItemID++
	item.ID = m.nextItemID
	m.Items = append(m.Items, item)
	return item, nil
}

func (m *MockPostingRepository) ListItems(_ context.Context, organizationID, batchID int64) ([]*domain.PostingItem, error) {
	batch, ok := m.Batches[batchID]
	if !ok || !m.batchInOrg(batch, organizationID) {
		return nil, domain.ErrBatchNotFound
	}
	var result []*domain.PostingItem
	for _, item := range m.Items {
		if item.BatchID == batchID {
			result = append(result, item)
		}
	}
	return result, nil
}

// MockSavingRepository is an in-memory domain.SavingRepository.
type MockSavingRepository struct {
	Savings map[int64]*domain.Saving
	nextID  int64
}

func NewMockSavingRepository() *MockSavingRepository {
	return &MockSavingRepository{Savings: make(map[int64]*domain.Saving)}
}

func (m *MockSavingRepository) AddSaving(s *domain.Saving) {
	if s.ID > m.nextID {
		m.nextID = s.ID
	}
	m.Savings[s.ID] = s
}

func (m *MockSavingRepository) Create(_ context.Context, saving *domain.Saving) (*domain.Saving, error) {
	for _, s := range m.Savings {
		if s.AccountNumber == saving.AccountNumber {
			return nil, domain.ErrSavingAccountExists
		}
	}
	m.nextID++
	saving.ID = m.nextID
	m.Savings[saving.ID] = saving
	return saving, nil
}

func (m *MockSavingRepository) get(organizationID, id int64) (*domain.Saving, error) {
	if s, ok := m.Savings[id]; ok && s.OrganizationID == organizationID {
		return s, nil
	}
	return nil, domain.ErrSavingNotFound
}

func (m *MockSavingRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Saving, error) {
	return m.get(organizationID, id)
}

func (m *MockSavingRepository) GetForUpdateTx(_ interface{}, organizationID, id int64) (*domain.Saving, error) {
	return m.get(organizationID, id)
}

func (m *MockSavingRepository) ListByOrganization(_ context.Context, organizationID int64) ([]*domain.Saving, error) {
	var result []*domain.Saving
	for _, s := range m.Savings {
		if s.OrganizationID == organizationID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockSavingRepository) ListByBorrower(_ context.Context, organizationID, borrowerID int64) ([]*domain.Saving, error) {
	var result []*domain.Saving
	for _, s := range m.Savings {
		if s.OrganizationID == organizationID && s.BorrowerID == borrowerID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockSavingRepository) UpdateBalanceTx(_ interface{}, saving *domain.Saving) error {
	existing, err := m.get(saving.OrganizationID, saving.ID)
	if err != nil {
		return err
	}
	existing.LedgerBalance = saving.LedgerBalance
	existing.LastTransaction = saving.LastTransaction
	return nil
}

// MockVendorRepository is an in-memory domain.VendorRepository.
type MockVendorRepository struct {
	Vendors map[int64]*domain.Vendor
	nextID  int64
}

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{Vendors: make(map[int64]*domain.Vendor)}
}

func (m *MockVendorRepository) AddVendor(v *domain.Vendor) {
	if v.ID > m.nextID {
		m.nextID = v.ID
	}
	m.Vendors[v.ID] = v
}

func (m *MockVendorRepository) Create(_ context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	m.nextID++
	vendor.ID = m.nextID
	m.Vendors[vendor.ID] = vendor
	return vendor, nil
}

func (m *MockVendorRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Vendor, error) {
	if v, ok := m.Vendors[id]; ok && v.OrganizationID == organizationID {
		return v, nil
	}
	return nil, domain.ErrVendorNotFound
}

func (m *MockVendorRepository) ListByOrganization(_ context.Context, organizationID int64) ([]*domain.Vendor, error) {
	var result []*domain.Vendor
	for _, v := range m.Vendors {
		if v.OrganizationID == organizationID {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockExpenseRepository is an in-memory domain.ExpenseRepository.
type MockExpenseRepository struct {
	Expenses map[int64]*domain.Expense
	nextID   int64
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[int64]*domain.Expense)}
}

func (m *MockExpenseRepository) AddExpense(e *domain.Expense) {
	if e.ID > m.nextID {
		m.nextID = e.ID
	}
	m.Expenses[e.ID] = e
}

func (m *MockExpenseRepository) Create(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	m.nextID++
	expense.ID = m.nextID
	m.Expenses[expense.ID] = expense
	return expense, nil
}

func (m *MockExpenseRepository) GetByID(_ context.Context, organizationID, id int64) (*domain.Expense, error) {
	if e, ok := m.Expenses[id]; ok && e.OrganizationID == organizationID {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) ListByScope(_ context.Context, scope domain.Scope, dateRange domain.DateRange) ([]*domain.Expense, error) {
	var result []*domain.Expense
	for _, e := range m.Expenses {
		if e.OrganizationID != scope.OrganizationID {
			continue
		}
		if scope.BranchID != nil && e.BranchID != *scope.BranchID {
			continue
		}
		if !dateRange.Contains(e.Date) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockExpenseRepository) Update(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	existing, ok := m.Expenses[expense.ID]
	if !ok || existing.OrganizationID != expense.OrganizationID {
		return nil, domain.ErrExpenseNotFound
	}
	m.Expenses[expense.ID] = expense
	return expense, nil
}
