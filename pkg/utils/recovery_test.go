package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

func TestRecoverWithLog_SwallowsPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	assert.NotPanics(t, func() {
		defer RecoverWithLog(ctx, "nightly summary")
		panic("boom")
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "nightly summary")
}

func TestRecoverWithLog_NoPanicLogsNothing(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	func() {
		defer RecoverWithLog(ctx, "nightly summary")
	}()

	assert.Zero(t, logs.Len())
}
