package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// --- Lead Repository Methods ---

// CreateLead inserts a new lead record.
func (r *PostgresRepo) CreateLead(ctx context.Context, lead *model.Lead) error {
	operation := func() error {
		if createErr := r.db.WithContext(ctx).Create(lead).Error; createErr != nil {
			return checkConstraintViolation(createErr)
		}
		return nil
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "CreateLead", operation)
	observer.ObserveDbOperationDuration("create", "lead", time.Since(startTime), commitErr)
	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to create lead after retries",
			zap.String("lead_id", lead.ID),
			zap.Error(commitErr))
		return commitErr
	}
	return nil
}

// FindLeadByID finds a lead by its ID.
func (r *PostgresRepo) FindLeadByID(ctx context.Context, id string) (*model.Lead, error) {
	loggerCtx := logger.FromContext(ctx)

	var lead model.Lead
	operation := func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).First(&lead)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return backoff.Permanent(fmt.Errorf("%w: lead_id %s: %w", apperrors.ErrNotFound, id, result.Error))
			}
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindLeadByID", operation)
	observer.ObserveDbOperationDuration("find_by_id", "lead", time.Since(startTime), findErr)

	if findErr != nil {
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, findErr
		}
		loggerCtx.Error("Failed to find lead by ID after retries",
			zap.String("lead_id", id),
			zap.Error(findErr))
		return nil, findErr
	}
	return &lead, nil
}

// FindAllLeads returns every lead, newest first.
func (r *PostgresRepo) FindAllLeads(ctx context.Context) ([]model.Lead, error) {
	loggerCtx := logger.FromContext(ctx)

	var leads []model.Lead
	operation := func() error {
		result := r.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&leads)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil // Success, even if no records found
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindAllLeads", operation)
	observer.ObserveDbOperationDuration("find_all", "lead", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to find leads after retries", zap.Error(findErr))
		return nil, findErr
	}
	if leads == nil { // Ensure empty slice is returned, not nil
		return []model.Lead{}, nil
	}
	return leads, nil
}

// FindLeadsByIDs fetches the leads matching the given IDs in one query.
func (r *PostgresRepo) FindLeadsByIDs(ctx context.Context, ids []string) ([]model.Lead, error) {
	if len(ids) == 0 {
		return []model.Lead{}, nil
	}
	loggerCtx := logger.FromContext(ctx)

	var leads []model.Lead
	operation := func() error {
		result := r.db.WithContext(ctx).
			Where("id IN ?", ids).
			Find(&leads)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindLeadsByIDs", operation)
	observer.ObserveDbOperationDuration("find_by_ids", "lead", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to find leads by IDs after retries",
			zap.Int("id_count", len(ids)),
			zap.Error(findErr))
		return nil, findErr
	}
	if leads == nil {
		return []model.Lead{}, nil
	}
	return leads, nil
}
