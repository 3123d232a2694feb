package master

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/master/branch"
)

type BranchServiceImpl struct {
	branch.BranchRepository
}

func NewBranchService(branchRepo branch.BranchRepository) branch.BranchService {
	return &BranchServiceImpl{BranchRepository: branchRepo}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// CreateBranch implements branch.BranchService.
func (s *BranchServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.BranchRepository.Create(ctx, branch.Branch{
		CompanyID:    companyID,
		Name:         req.Name,
		Address:      req.Address,
		Timezone:     req.Timezone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return toBranchResponse(created), nil
}

// GetBranch implements branch.BranchService.
func (s *BranchServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	b, err := s.BranchRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return toBranchResponse(b), nil
}

// ListBranches implements branch.BranchService.
func (s *BranchServiceImpl) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	branches, err := s.BranchRepository.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, toBranchResponse(b))
	}
	return responses, nil
}

// UpdateBranch implements branch.BranchService.
func (s *BranchServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	current, err := s.BranchRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}
	if req.Latitude != nil {
		current.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		current.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		current.RadiusMeters = *req.RadiusMeters
	}

	updated, err := s.BranchRepository.Update(ctx, current)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return toBranchResponse(updated), nil
}

func toBranchResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:           b.ID,
		CompanyID:    b.CompanyID,
		Name:         b.Name,
		Address:      b.Address,
		Timezone:     b.Timezone,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		RadiusMeters: b.RadiusMeters,
	}
}
