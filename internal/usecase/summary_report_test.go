package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	storagemock "gitlab.com/ringvox/api/sales-call-dashboard/internal/storage/mock"
)

// MockGenerator mocks the summary content generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, input model.DailySummaryInput) (model.DailySummaryEmail, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(model.DailySummaryEmail), args.Error(1)
}

// MockReportMailer mocks the mailer worker pool.
type MockReportMailer struct {
	mock.Mock
}

func (m *MockReportMailer) SubmitTask(taskData MailTaskData) error {
	args := m.Called(taskData)
	return args.Error(0)
}

func (m *MockReportMailer) Stop() {
	m.Called()
}

func newSummaryFixture() (*SummaryReportService, *storagemock.CallLogRepoMock, *storagemock.LeadRepoMock, *storagemock.SalesExecutiveRepoMock, *MockGenerator, *MockReportMailer) {
	callLogRepo := new(storagemock.CallLogRepoMock)
	leadRepo := new(storagemock.LeadRepoMock)
	execRepo := new(storagemock.SalesExecutiveRepoMock)
	generator := new(MockGenerator)
	mailerPool := new(MockReportMailer)

	dashboard := NewDashboardService(callLogRepo, 0, 0)
	logView := NewLogViewService(callLogRepo, leadRepo, execRepo, 0)
	service := NewSummaryReportService(dashboard, logView, generator, mailerPool)
	return service, callLogRepo, leadRepo, execRepo, generator, mailerPool
}

func TestBuildDailySummaryInput_FullDay(t *testing.T) {
	service, callLogRepo, leadRepo, execRepo, _, _ := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	logs := []model.CallLog{
		// Newest first, as the store returns them. The first connected
		// call is the highlight.
		*model.NewFakeCallLog(&model.CallLog{
			LeadID:      "lead-2",
			SalesExecID: "exec-1",
			CallOutcome: model.OutcomeNotConnected,
			LeadType:    model.LeadTypeExisting,
			CreatedAt:   reportDay.Add(17 * time.Hour),
		}),
		*model.NewFakeCallLog(&model.CallLog{
			LeadID:        "lead-1",
			SalesExecID:   "exec-1",
			CallOutcome:   model.OutcomeConnected,
			LeadType:      model.LeadTypeNew,
			InterestLevel: model.InterestHigh,
			LeadStage:     model.StageDemoScheduled,
			FollowUpDate:  model.DateOf(day(2025, 8, 22)),
			CreatedAt:     reportDay.Add(14 * time.Hour),
		}),
		*model.NewFakeCallLog(&model.CallLog{
			LeadID:      "lead-2",
			SalesExecID: "exec-1",
			CallOutcome: model.OutcomeCallBack,
			LeadType:    model.LeadTypeExisting,
			LeadStage:   model.StageClosedWon,
			DealValue:   model.Float64Of(90000),
			CreatedAt:   reportDay.Add(10 * time.Hour),
		}),
	}

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").Return(logs, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(1), nil)
	leadRepo.On("FindByIDs", mock.Anything, []string{"lead-2", "lead-1"}).Return([]model.Lead{
		{ID: "lead-1", BusinessName: "Meridian Textiles"},
		{ID: "lead-2", BusinessName: "Delta Logistics"},
	}, nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{
		{ID: "exec-1", Name: "Tanvir Ahmed"},
	}, nil)

	input, err := service.BuildDailySummaryInput(testContext(t), reportDay, "")
	require.NoError(t, err)

	assert.Equal(t, "2025-08-20", input.Date)
	assert.Equal(t, 3, input.TotalCalls)
	assert.Equal(t, 1, input.ConnectedCalls)
	assert.Equal(t, 1, input.NewLeadsAdded)
	assert.Equal(t, 1, input.DemosScheduled)
	assert.Equal(t, 1, input.DealsClosed)
	assert.Equal(t, float64(90000), input.TotalDealValue)
	assert.Equal(t, 1, input.FollowUpsSet)
	assert.Equal(t, "Tanvir Ahmed", input.SalesExecName)
	assert.Equal(t, "Meridian Textiles", input.BusinessName)
	assert.Equal(t, "High", input.InterestLevel)
	assert.Equal(t, "Demo Scheduled", input.LeadStage)
	assert.Equal(t, "22-Aug-2025", input.FollowUpDate)
}

func TestBuildDailySummaryInput_EmptyDay(t *testing.T) {
	service, callLogRepo, _, execRepo, _, _ := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").
		Return([]model.CallLog{}, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{}, nil)

	input, err := service.BuildDailySummaryInput(testContext(t), reportDay, "")
	require.NoError(t, err)

	assert.Zero(t, input.TotalCalls)
	assert.Zero(t, input.FollowUpsSet)
	assert.Equal(t, PlaceholderName, input.SalesExecName)
	assert.Equal(t, PlaceholderName, input.BusinessName)
	assert.Equal(t, PlaceholderName, input.InterestLevel)
	assert.Equal(t, PlaceholderName, input.LeadStage)
	assert.Equal(t, PlaceholderName, input.FollowUpDate)
}

func TestBuildDailySummaryInput_NoConnectedKeepsPlaceholder(t *testing.T) {
	service, callLogRepo, leadRepo, execRepo, _, _ := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	logs := []model.CallLog{
		*model.NewFakeCallLog(&model.CallLog{
			LeadID:      "lead-1",
			SalesExecID: "exec-1",
			CallOutcome: model.OutcomeNotConnected,
			LeadType:    model.LeadTypeExisting,
		}),
	}

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "exec-1").Return(logs, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	leadRepo.On("FindByIDs", mock.Anything, []string{"lead-1"}).
		Return([]model.Lead{{ID: "lead-1", BusinessName: "Delta Logistics"}}, nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{{ID: "exec-1", Name: "Nusrat Jahan"}}, nil)

	input, err := service.BuildDailySummaryInput(testContext(t), reportDay, "exec-1")
	require.NoError(t, err)

	// The executive name still comes from the day's rows, but with no
	// connected call the highlight stays the placeholder record.
	assert.Equal(t, "Nusrat Jahan", input.SalesExecName)
	assert.Equal(t, PlaceholderName, input.BusinessName)
	assert.Equal(t, PlaceholderName, input.InterestLevel)
	assert.Equal(t, PlaceholderName, input.LeadStage)
	assert.Equal(t, PlaceholderName, input.FollowUpDate)
}

func TestBuildDailySummaryInput_UnresolvedLeadReadsNewLead(t *testing.T) {
	service, callLogRepo, leadRepo, execRepo, _, _ := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	logs := []model.CallLog{
		*model.NewFakeCallLog(&model.CallLog{
			LeadID:       "lead-gone",
			SalesExecID:  "exec-1",
			CallOutcome:  model.OutcomeConnected,
			LeadType:     model.LeadTypeNew,
			FollowUpDate: model.DateOf(day(2025, 8, 25)),
		}),
	}

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").Return(logs, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	leadRepo.On("FindByIDs", mock.Anything, []string{"lead-gone"}).Return([]model.Lead{}, nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{{ID: "exec-1", Name: "Nusrat Jahan"}}, nil)

	input, err := service.BuildDailySummaryInput(testContext(t), reportDay, "")
	require.NoError(t, err)

	assert.Equal(t, "New Lead", input.BusinessName)
	assert.Equal(t, "25-Aug-2025", input.FollowUpDate)
}

func TestSendDailySummary_FansOutToAllRecipients(t *testing.T) {
	service, callLogRepo, _, execRepo, generator, mailerPool := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").
		Return([]model.CallLog{}, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{}, nil)

	generated := model.DailySummaryEmail{Subject: "Daily Sales Call Summary", HTMLBody: "<p>quiet day</p>"}
	generator.On("Generate", mock.Anything, mock.AnythingOfType("model.DailySummaryInput")).Return(generated, nil)
	mailerPool.On("SubmitTask", mock.AnythingOfType("usecase.MailTaskData")).Return(nil)

	recipients := []string{"manager@ringvox.example", "director@ringvox.example"}
	email, err := service.SendDailySummary(testContext(t), reportDay, "", recipients)
	require.NoError(t, err)
	assert.Equal(t, generated, *email)

	mailerPool.AssertNumberOfCalls(t, "SubmitTask", 2)
	seen := make(map[string]bool)
	for _, call := range mailerPool.Calls {
		task := call.Arguments.Get(0).(MailTaskData)
		seen[task.Recipient] = true
		assert.Equal(t, generated, task.Email)
	}
	assert.True(t, seen["manager@ringvox.example"])
	assert.True(t, seen["director@ringvox.example"])
}

func TestSendDailySummary_GeneratorFailure(t *testing.T) {
	service, callLogRepo, _, execRepo, generator, mailerPool := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").
		Return([]model.CallLog{}, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{}, nil)

	genErr := errors.New("model unavailable")
	generator.On("Generate", mock.Anything, mock.AnythingOfType("model.DailySummaryInput")).
		Return(model.DailySummaryEmail{}, genErr)

	_, err := service.SendDailySummary(testContext(t), reportDay, "", []string{"manager@ringvox.example"})
	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)
	mailerPool.AssertNotCalled(t, "SubmitTask", mock.Anything)
}

func TestSendDailySummary_BuildFailure(t *testing.T) {
	service, callLogRepo, _, execRepo, generator, mailerPool := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").
		Return(nil, apperrors.ErrDatabase)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{}, nil).Maybe()

	_, err := service.SendDailySummary(testContext(t), reportDay, "", []string{"manager@ringvox.example"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	mailerPool.AssertNotCalled(t, "SubmitTask", mock.Anything)
}

func TestSendDailySummary_SubmitFailureSurfaces(t *testing.T) {
	service, callLogRepo, _, execRepo, generator, mailerPool := newSummaryFixture()
	reportDay := day(2025, 8, 20)

	callLogRepo.On("FindByDateRange", mock.Anything, &reportDay, &reportDay, "").
		Return([]model.CallLog{}, nil)
	callLogRepo.On("CountFollowUpsOn", mock.Anything, day(2025, 8, 21)).Return(int64(0), nil)
	execRepo.On("FindAll", mock.Anything).Return([]model.SalesExecutive{}, nil)

	generator.On("Generate", mock.Anything, mock.AnythingOfType("model.DailySummaryInput")).
		Return(model.DailySummaryEmail{Subject: "s", HTMLBody: "b"}, nil)

	poolErr := errors.New("pool overload")
	mailerPool.On("SubmitTask", mock.AnythingOfType("usecase.MailTaskData")).Return(poolErr)

	email, err := service.SendDailySummary(testContext(t), reportDay, "", []string{"manager@ringvox.example"})
	require.Error(t, err)
	assert.ErrorIs(t, err, poolErr)
	assert.NotNil(t, email)
}
