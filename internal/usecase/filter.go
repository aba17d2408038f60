package usecase

import (
	"fmt"
	"time"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// Filter is the (date-range, executive) predicate shared by every
// aggregation entry point. Nil bounds mean the side is open; defaulting is
// per-operation (summary counters run all-time, the trend falls back to a
// trailing window), so callers pick the default explicitly.
type Filter struct {
	From        *time.Time
	To          *time.Time
	SalesExecID string
}

// ParseFilter normalizes raw query-string inputs into a Filter. Empty
// strings mean "absent"; unparseable dates fail the whole call with
// ErrBadRequest rather than silently defaulting.
func ParseFilter(fromStr, toStr, salesExecID string) (Filter, error) {
	var f Filter
	if fromStr != "" {
		from, err := utils.ParseDay(fromStr)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: invalid from date %q: %w", apperrors.ErrBadRequest, fromStr, err)
		}
		f.From = &from
	}
	if toStr != "" {
		to, err := utils.ParseDay(toStr)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: invalid to date %q: %w", apperrors.ErrBadRequest, toStr, err)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, fmt.Errorf("%w: to date %s precedes from date %s",
			apperrors.ErrBadRequest, utils.FormatDay(*f.To), utils.FormatDay(*f.From))
	}
	f.SalesExecID = salesExecID
	return f, nil
}

// EndDay is the filter's effective end day: the `to` bound when present,
// otherwise the current day. The follow-up look-ahead counts against the day
// after this.
func (f Filter) EndDay() time.Time {
	if f.To != nil {
		return utils.StartOfDay(*f.To)
	}
	return utils.Today()
}

// TrendWindow resolves concrete inclusive [from, to] day bounds for the
// daily trend: explicit bounds win, an open end defaults to today, and an
// open start defaults to the trailing window of `days` days ending at the
// resolved end.
func (f Filter) TrendWindow(days int) (time.Time, time.Time) {
	to := f.EndDay()
	if f.From != nil {
		return utils.StartOfDay(*f.From), to
	}
	if days < 1 {
		days = 1
	}
	return to.AddDate(0, 0, -(days - 1)), to
}

// WithWindow returns a copy of f with both bounds pinned to the given days.
func (f Filter) WithWindow(from, to time.Time) Filter {
	f.From = &from
	f.To = &to
	return f
}
