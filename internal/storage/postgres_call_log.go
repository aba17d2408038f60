package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// --- Call Log Repository Methods ---

// CreateCallLog inserts a new call log record.
func (r *PostgresRepo) CreateCallLog(ctx context.Context, log *model.CallLog) error {
	operation := func() error {
		if createErr := r.db.WithContext(ctx).Create(log).Error; createErr != nil {
			return checkConstraintViolation(createErr)
		}
		return nil
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "CreateCallLog", operation)
	observer.ObserveDbOperationDuration("create", "call_log", time.Since(startTime), commitErr)
	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to create call log after retries",
			zap.String("call_log_id", log.ID),
			zap.Error(commitErr))
		return commitErr
	}
	return nil
}

// CreateLeadAndCallLog inserts a new lead and its first call log in one
// transaction so a failure on either side leaves nothing behind.
func (r *PostgresRepo) CreateLeadAndCallLog(ctx context.Context, lead *model.Lead, log *model.CallLog) error {
	loggerCtx := logger.FromContext(ctx)

	operation := func() error {
		tx := r.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, tx.Error)
		}
		var txErr error
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			} else if txErr != nil {
				if rbErr := tx.Rollback().Error; rbErr != nil {
					loggerCtx.Error("Failed to rollback transaction after error", zap.Error(rbErr), zap.NamedError("originalTxError", txErr))
				}
			}
		}()

		if createErr := tx.Create(lead).Error; createErr != nil {
			txErr = checkConstraintViolation(createErr)
			return txErr
		}
		if createErr := tx.Create(log).Error; createErr != nil {
			txErr = checkConstraintViolation(createErr)
			return txErr
		}

		if commitErr := tx.Commit().Error; commitErr != nil {
			txErr = fmt.Errorf("%w: failed to commit lead and call log transaction: %w", apperrors.ErrDatabase, commitErr)
			return txErr
		}
		return nil
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "CreateLeadAndCallLog Commit", operation)
	observer.ObserveDbOperationDuration("create_with_lead", "call_log", time.Since(startTime), commitErr)
	if commitErr != nil {
		loggerCtx.Error("Failed to create lead and call log after retries",
			zap.String("lead_id", lead.ID),
			zap.String("call_log_id", log.ID),
			zap.Error(commitErr))
		return commitErr
	}
	return nil
}

// FindCallLogsByDateRange returns call logs whose call date falls inside the
// window, newest submission first. Either bound may be nil for an open side,
// and execID narrows the scan to one executive when non-empty. The upper
// bound is inclusive of the whole day it names.
func (r *PostgresRepo) FindCallLogsByDateRange(ctx context.Context, from, to *time.Time, execID string) ([]model.CallLog, error) {
	loggerCtx := logger.FromContext(ctx)

	var logs []model.CallLog
	operation := func() error {
		query := r.db.WithContext(ctx).Model(&model.CallLog{})
		if from != nil {
			query = query.Where("date >= ?", utils.StartOfDay(*from))
		}
		if to != nil {
			query = query.Where("date < ?", utils.NextDay(*to))
		}
		if execID != "" {
			query = query.Where("sales_exec_id = ?", execID)
		}
		result := query.
			Order("created_at DESC, id DESC").
			Find(&logs)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil // Success, even if no records found
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindCallLogsByDateRange", operation)
	observer.ObserveDbOperationDuration("find_by_date_range", "call_log", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to find call logs by date range after retries",
			zap.String("executive_id", execID),
			zap.Error(findErr))
		return nil, findErr
	}
	if logs == nil { // Ensure empty slice is returned, not nil
		return []model.CallLog{}, nil
	}
	return logs, nil
}

// CountFollowUpsOn counts call logs whose follow-up date lands on the given
// calendar day, across the whole table.
func (r *PostgresRepo) CountFollowUpsOn(ctx context.Context, day time.Time) (int64, error) {
	loggerCtx := logger.FromContext(ctx)

	var count int64
	operation := func() error {
		result := r.db.WithContext(ctx).
			Model(&model.CallLog{}).
			Where("follow_up_date = ?", utils.FormatDay(day)).
			Count(&count)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	countErr := retryableOperation(ctx, readPolicy, "CountFollowUpsOn", operation)
	observer.ObserveDbOperationDuration("count_follow_ups", "call_log", time.Since(startTime), countErr)

	if countErr != nil {
		loggerCtx.Error("Failed to count follow-ups after retries",
			zap.String("day", utils.FormatDay(day)),
			zap.Error(countErr))
		return 0, countErr
	}
	return count, nil
}

// CountCallLogs returns the total number of call log rows.
func (r *PostgresRepo) CountCallLogs(ctx context.Context) (int64, error) {
	loggerCtx := logger.FromContext(ctx)

	var count int64
	operation := func() error {
		result := r.db.WithContext(ctx).Model(&model.CallLog{}).Count(&count)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	countErr := retryableOperation(ctx, readPolicy, "CountCallLogs", operation)
	observer.ObserveDbOperationDuration("count", "call_log", time.Since(startTime), countErr)

	if countErr != nil {
		loggerCtx.Error("Failed to count call logs after retries", zap.Error(countErr))
		return 0, countErr
	}
	return count, nil
}
