package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

// MockMailer mocks the delivery transport.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, recipient string, email model.DailySummaryEmail) error {
	args := m.Called(ctx, recipient, email)
	return args.Error(0)
}

// setupReportMailerTest creates the worker without initializing the actual
// ants pool; processMailTask is exercised directly.
func setupReportMailerTest(t *testing.T) (*ReportMailer, *MockMailer, *observer.ObservedLogs) {
	transport := new(MockMailer)

	observedZapCore, observedLogs := observer.New(zapcore.DebugLevel)
	testLogger := zap.New(observedZapCore).Named("test_report_mailer")

	worker := &ReportMailer{
		mailer:     transport,
		baseLogger: testLogger,
	}
	return worker, transport, observedLogs
}

func testMailTask() MailTaskData {
	return MailTaskData{
		Ctx:       context.Background(),
		Recipient: "manager@ringvox.example",
		Email: model.DailySummaryEmail{
			Subject:  "Daily Sales Call Summary - 2025-08-20",
			HTMLBody: "<p>summary</p>",
		},
	}
}

func TestProcessMailTask_Delivers(t *testing.T) {
	worker, transport, observedLogs := setupReportMailerTest(t)
	task := testMailTask()

	transport.On("Send", mock.Anything, task.Recipient, task.Email).Return(nil).Once()

	worker.processMailTask(task)

	transport.AssertExpectations(t)
	assert.Equal(t, 1, observedLogs.FilterMessage("Summary email delivery finished").Len())
}

func TestProcessMailTask_DeliveryError(t *testing.T) {
	worker, transport, observedLogs := setupReportMailerTest(t)
	task := testMailTask()

	transport.On("Send", mock.Anything, task.Recipient, task.Email).
		Return(errors.New("sendgrid returned status 502")).Once()

	worker.processMailTask(task)

	transport.AssertExpectations(t)
	assert.Equal(t, 1, observedLogs.FilterMessage("Summary email delivery failed").Len())
}
