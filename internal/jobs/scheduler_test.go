package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(nil, "not a cron spec", nil, zap.NewNop())
	err := s.Start()
	require.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, "0 19 * * *", []string{"manager@ringvox.example"}, zap.NewNop())
	require.NoError(t, s.Start())
	assert.NotPanics(t, s.Stop)
}
