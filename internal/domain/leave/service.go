package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	MyLeaves(ctx context.Context, filter ListFilter) (ListResponse, error)
	Balance(ctx context.Context) (BalanceResponse, error)
	Breakdown(ctx context.Context) (BreakdownResponse, error)

	// Admin operations
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
	Review(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
}
