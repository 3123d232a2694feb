package branch

import "context"

// BranchService manages branch geofence configuration (admin).
type BranchService interface {
	CreateBranch(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetBranch(ctx context.Context, id string) (BranchResponse, error)
	ListBranches(ctx context.Context) ([]BranchResponse, error)
	UpdateBranch(ctx context.Context, req UpdateBranchRequest) (BranchResponse, error)
}
