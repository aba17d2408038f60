package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

func TestParseFilter_BothBounds(t *testing.T) {
	f, err := ParseFilter("2025-08-01", "2025-08-15", "exec-1")
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, "2025-08-01", utils.FormatDay(*f.From))
	assert.Equal(t, "2025-08-15", utils.FormatDay(*f.To))
	assert.Equal(t, "exec-1", f.SalesExecID)
}

func TestParseFilter_Empty(t *testing.T) {
	f, err := ParseFilter("", "", "")
	require.NoError(t, err)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
	assert.Empty(t, f.SalesExecID)
}

func TestParseFilter_BadDate(t *testing.T) {
	_, err := ParseFilter("15-08-2025", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = ParseFilter("", "not-a-date", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestParseFilter_ToBeforeFrom(t *testing.T) {
	_, err := ParseFilter("2025-08-15", "2025-08-01", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestFilter_EndDay(t *testing.T) {
	to := time.Date(2025, 8, 20, 13, 45, 0, 0, time.UTC)
	f := Filter{To: &to}
	assert.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), f.EndDay())

	// Open end defaults to today.
	assert.Equal(t, utils.Today(), Filter{}.EndDay())
}

func TestFilter_TrendWindow_Explicit(t *testing.T) {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	f := Filter{From: &from, To: &to}

	gotFrom, gotTo := f.TrendWindow(7)
	assert.Equal(t, from, gotFrom)
	assert.Equal(t, to, gotTo)
}

func TestFilter_TrendWindow_Trailing(t *testing.T) {
	to := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	f := Filter{To: &to}

	gotFrom, gotTo := f.TrendWindow(7)
	assert.Equal(t, time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, to, gotTo)
}
