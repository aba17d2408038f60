package storage

import (
	"context"
	"time"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

// LeadRepo defines lead storage operations
type LeadRepo interface {
	Create(ctx context.Context, lead *model.Lead) error
	FindByID(ctx context.Context, id string) (*model.Lead, error)
	FindAll(ctx context.Context) ([]model.Lead, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Lead, error)
	Close(ctx context.Context) error
}

// SalesExecutiveRepo defines sales executive storage operations
type SalesExecutiveRepo interface {
	Create(ctx context.Context, exec *model.SalesExecutive) error
	FindByID(ctx context.Context, id string) (*model.SalesExecutive, error)
	FindAll(ctx context.Context) ([]model.SalesExecutive, error)
	Seed(ctx context.Context, names []string) error
	Close(ctx context.Context) error
}

// CallLogRepo defines call log storage operations
type CallLogRepo interface {
	Create(ctx context.Context, log *model.CallLog) error
	CreateWithLead(ctx context.Context, lead *model.Lead, log *model.CallLog) error
	FindByDateRange(ctx context.Context, from, to *time.Time, execID string) ([]model.CallLog, error)
	CountFollowUpsOn(ctx context.Context, day time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}
