package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// BranchService manages branches and their loan officers.
type BranchService struct {
	branchRepo  domain.BranchRepository
	officerRepo domain.OfficerRepository
	orgRepo     domain.OrganizationRepository
}

func NewBranchService(
	branchRepo domain.BranchRepository,
	officerRepo domain.OfficerRepository,
	orgRepo domain.OrganizationRepository,
) *BranchService {
	return &BranchService{branchRepo: branchRepo, officerRepo: officerRepo, orgRepo: orgRepo}
}

func (s *BranchService) CreateBranch(ctx context.Context, organizationID int64, name string) (*domain.Branch, error) {
	if _, err := s.orgRepo.GetByID(ctx, organizationID); err != nil {
		return nil, err
	}

	branch := &domain.Branch{
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(name),
		CreatedAt:      time.Now().UTC(),
	}
	if err := branch.Validate(); err != nil {
		return nil, err
	}

	return s.branchRepo.Create(ctx, branch)
}

func (s *BranchService) GetBranch(ctx context.Context, organizationID, id int64) (*domain.Branch, error) {
	return s.branchRepo.GetByID(ctx, organizationID, id)
}

func (s *BranchService) GetBranches(ctx context.Context, organizationID int64) ([]*domain.Branch, error) {
	return s.branchRepo.ListByOrganization(ctx, organizationID)
}

// NewAPIKey generates an officer API key. Keys are opaque bearer tokens
// prefixed for easy identification in logs and config.
func NewAPIKey() string {
	return "mfo_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CreateOfficer registers a loan officer under a branch and issues an API
// key. The key is returned once and stored for lookup, not displayed again.
func (s *BranchService) CreateOfficer(ctx context.Context, organizationID, branchID int64, username string) (*domain.LoanOfficer, error) {
	if _, err := s.branchRepo.GetByID(ctx, organizationID, branchID); err != nil {
		return nil, err
	}

	officer := &domain.LoanOfficer{
		OrganizationID: organizationID,
		BranchID:       branchID,
		Username:       strings.TrimSpace(username),
		APIKey:         NewAPIKey(),
		CreatedAt:      time.Now().UTC(),
	}
	if err := officer.Validate(); err != nil {
		return nil, err
	}

	return s.officerRepo.Create(ctx, officer)
}

func (s *BranchService) GetOfficer(ctx context.Context, organizationID, id int64) (*domain.LoanOfficer, error) {
	return s.officerRepo.GetByID(ctx, organizationID, id)
}

func (s *BranchService) GetOfficers(ctx context.Context, organizationID int64) ([]*domain.LoanOfficer, error) {
	return s.officerRepo.ListByOrganization(ctx, organizationID)
}
