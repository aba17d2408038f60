package summarygen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

func testInput() model.DailySummaryInput {
	return model.DailySummaryInput{
		Date:           "2025-08-20",
		TotalCalls:     12,
		ConnectedCalls: 7,
		NewLeadsAdded:  3,
		DemosScheduled: 2,
		DealsClosed:    1,
		TotalDealValue: 90000,
		FollowUpsSet:   4,
		SalesExecName:  "Tanvir Ahmed",
		BusinessName:   "Meridian Textiles",
		InterestLevel:  "High",
		LeadStage:      "Demo Scheduled",
		FollowUpDate:   "22-Aug-2025",
	}
}

func TestTemplateGenerator_RendersAllNumbers(t *testing.T) {
	g := NewTemplateGenerator()

	email, err := g.Generate(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "Daily Sales Call Summary - Tanvir Ahmed - 2025-08-20", email.Subject)
	assert.Contains(t, email.HTMLBody, "Total calls: 12")
	assert.Contains(t, email.HTMLBody, "Connected calls: 7")
	assert.Contains(t, email.HTMLBody, "New leads added: 3")
	assert.Contains(t, email.HTMLBody, "Demos scheduled: 2")
	assert.Contains(t, email.HTMLBody, "Deals closed: 1 (total value 90000.00)")
	assert.Contains(t, email.HTMLBody, "Follow-ups set: 4")
	assert.Contains(t, email.HTMLBody, "Meridian Textiles")
	assert.Contains(t, email.HTMLBody, "22-Aug-2025")
}

func TestBuildPrompt_CarriesHighlight(t *testing.T) {
	prompt := buildPrompt(testInput())

	assert.Contains(t, prompt, "2025-08-20")
	assert.Contains(t, prompt, "- Total calls: 12")
	assert.Contains(t, prompt, "Reporting executive: Tanvir Ahmed")
	assert.Contains(t, prompt, "Meridian Textiles")
	assert.Contains(t, prompt, "interest: High")
}

func TestNewGenerator_FallsBackWithoutKey(t *testing.T) {
	g := NewGenerator(Config{}, zap.NewNop())
	_, ok := g.(*TemplateGenerator)
	assert.True(t, ok)

	g = NewGenerator(Config{APIKey: "sk-test"}, zap.NewNop())
	_, ok = g.(*OpenAIGenerator)
	assert.True(t, ok)
}
