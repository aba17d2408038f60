package storage

import (
	"context"
	"time"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

// LeadRepoAdapter adapts the PostgresRepo to the LeadRepo interface
type LeadRepoAdapter struct {
	postgres *PostgresRepo
}

// NewLeadRepoAdapter creates a new lead repository adapter
func NewLeadRepoAdapter(postgres *PostgresRepo) LeadRepo {
	return &LeadRepoAdapter{postgres: postgres}
}

// Create inserts a lead
func (a *LeadRepoAdapter) Create(ctx context.Context, lead *model.Lead) error {
	return a.postgres.CreateLead(ctx, lead)
}

// FindByID finds a lead by ID
func (a *LeadRepoAdapter) FindByID(ctx context.Context, id string) (*model.Lead, error) {
	return a.postgres.FindLeadByID(ctx, id)
}

// FindAll returns all leads
func (a *LeadRepoAdapter) FindAll(ctx context.Context) ([]model.Lead, error) {
	return a.postgres.FindAllLeads(ctx)
}

// FindByIDs returns the leads matching the given IDs
func (a *LeadRepoAdapter) FindByIDs(ctx context.Context, ids []string) ([]model.Lead, error) {
	return a.postgres.FindLeadsByIDs(ctx, ids)
}

func (a *LeadRepoAdapter) Close(ctx context.Context) error {
	return a.postgres.Close(ctx)
}

// SalesExecutiveRepoAdapter adapts the PostgresRepo to the SalesExecutiveRepo interface
type SalesExecutiveRepoAdapter struct {
	postgres *PostgresRepo
}

// NewSalesExecutiveRepoAdapter creates a new sales executive repository adapter
func NewSalesExecutiveRepoAdapter(postgres *PostgresRepo) SalesExecutiveRepo {
	return &SalesExecutiveRepoAdapter{postgres: postgres}
}

// Create inserts a sales executive
func (a *SalesExecutiveRepoAdapter) Create(ctx context.Context, exec *model.SalesExecutive) error {
	return a.postgres.CreateExecutive(ctx, exec)
}

// FindByID finds a sales executive by ID
func (a *SalesExecutiveRepoAdapter) FindByID(ctx context.Context, id string) (*model.SalesExecutive, error) {
	return a.postgres.FindExecutiveByID(ctx, id)
}

// FindAll returns all sales executives
func (a *SalesExecutiveRepoAdapter) FindAll(ctx context.Context) ([]model.SalesExecutive, error) {
	return a.postgres.FindAllExecutives(ctx)
}

// Seed inserts the given names when the table is empty
func (a *SalesExecutiveRepoAdapter) Seed(ctx context.Context, names []string) error {
	return a.postgres.SeedExecutives(ctx, names)
}

func (a *SalesExecutiveRepoAdapter) Close(ctx context.Context) error {
	return a.postgres.Close(ctx)
}

// CallLogRepoAdapter adapts the PostgresRepo to the CallLogRepo interface
type CallLogRepoAdapter struct {
	postgres *PostgresRepo
}

// NewCallLogRepoAdapter creates a new call log repository adapter
func NewCallLogRepoAdapter(postgres *PostgresRepo) CallLogRepo {
	return &CallLogRepoAdapter{postgres: postgres}
}

// Create inserts a call log
func (a *CallLogRepoAdapter) Create(ctx context.Context, log *model.CallLog) error {
	return a.postgres.CreateCallLog(ctx, log)
}

// CreateWithLead inserts a lead and its call log in one transaction
func (a *CallLogRepoAdapter) CreateWithLead(ctx context.Context, lead *model.Lead, log *model.CallLog) error {
	return a.postgres.CreateLeadAndCallLog(ctx, lead, log)
}

// FindByDateRange returns call logs inside the window
func (a *CallLogRepoAdapter) FindByDateRange(ctx context.Context, from, to *time.Time, execID string) ([]model.CallLog, error) {
	return a.postgres.FindCallLogsByDateRange(ctx, from, to, execID)
}

// CountFollowUpsOn counts follow-ups landing on the given day
func (a *CallLogRepoAdapter) CountFollowUpsOn(ctx context.Context, day time.Time) (int64, error) {
	return a.postgres.CountFollowUpsOn(ctx, day)
}

// Count returns the total number of call logs
func (a *CallLogRepoAdapter) Count(ctx context.Context) (int64, error) {
	return a.postgres.CountCallLogs(ctx)
}

func (a *CallLogRepoAdapter) Close(ctx context.Context) error {
	return a.postgres.Close(ctx)
}

// Ensure adapters implement the interfaces
var _ LeadRepo = (*LeadRepoAdapter)(nil)
var _ SalesExecutiveRepo = (*SalesExecutiveRepoAdapter)(nil)
var _ CallLogRepo = (*CallLogRepoAdapter)(nil)
