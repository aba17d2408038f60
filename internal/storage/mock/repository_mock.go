package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

// --- LeadRepo Mock ---

// LeadRepoMock mocks the LeadRepo interface
type LeadRepoMock struct {
	mock.Mock
}

// Create mocks the Create method
func (m *LeadRepoMock) Create(ctx context.Context, lead *model.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *LeadRepoMock) FindByID(ctx context.Context, id string) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

// FindAll mocks the FindAll method
func (m *LeadRepoMock) FindAll(ctx context.Context) ([]model.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

// FindByIDs mocks the FindByIDs method
func (m *LeadRepoMock) FindByIDs(ctx context.Context, ids []string) ([]model.Lead, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

func (m *LeadRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- SalesExecutiveRepo Mock ---

// SalesExecutiveRepoMock mocks the SalesExecutiveRepo interface
type SalesExecutiveRepoMock struct {
	mock.Mock
}

// Create mocks the Create method
func (m *SalesExecutiveRepoMock) Create(ctx context.Context, exec *model.SalesExecutive) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *SalesExecutiveRepoMock) FindByID(ctx context.Context, id string) (*model.SalesExecutive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesExecutive), args.Error(1)
}

// FindAll mocks the FindAll method
func (m *SalesExecutiveRepoMock) FindAll(ctx context.Context) ([]model.SalesExecutive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SalesExecutive), args.Error(1)
}

// Seed mocks the Seed method
func (m *SalesExecutiveRepoMock) Seed(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func (m *SalesExecutiveRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- CallLogRepo Mock ---

// CallLogRepoMock mocks the CallLogRepo interface
type CallLogRepoMock struct {
	mock.Mock
}

// Create mocks the Create method
func (m *CallLogRepoMock) Create(ctx context.Context, log *model.CallLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// CreateWithLead mocks the CreateWithLead method
func (m *CallLogRepoMock) CreateWithLead(ctx context.Context, lead *model.Lead, log *model.CallLog) error {
	args := m.Called(ctx, lead, log)
	return args.Error(0)
}

// FindByDateRange mocks the FindByDateRange method
func (m *CallLogRepoMock) FindByDateRange(ctx context.Context, from, to *time.Time, execID string) ([]model.CallLog, error) {
	args := m.Called(ctx, from, to, execID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CallLog), args.Error(1)
}

// CountFollowUpsOn mocks the CountFollowUpsOn method
func (m *CallLogRepoMock) CountFollowUpsOn(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// Count mocks the Count method
func (m *CallLogRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CallLogRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
