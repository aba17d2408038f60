package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// --- Sales Executive Repository Methods ---

// CreateExecutive inserts a new sales executive record.
func (r *PostgresRepo) CreateExecutive(ctx context.Context, exec *model.SalesExecutive) error {
	if exec.ID == "" {
		exec.ID = uuid.New().String()
	}

	operation := func() error {
		if createErr := r.db.WithContext(ctx).Create(exec).Error; createErr != nil {
			return checkConstraintViolation(createErr)
		}
		return nil
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "CreateExecutive", operation)
	observer.ObserveDbOperationDuration("create", "sales_executive", time.Since(startTime), commitErr)
	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to create sales executive after retries",
			zap.String("executive_id", exec.ID),
			zap.Error(commitErr))
		return commitErr
	}
	return nil
}

// FindExecutiveByID finds a sales executive by its ID.
func (r *PostgresRepo) FindExecutiveByID(ctx context.Context, id string) (*model.SalesExecutive, error) {
	loggerCtx := logger.FromContext(ctx)

	var exec model.SalesExecutive
	operation := func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).First(&exec)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return backoff.Permanent(fmt.Errorf("%w: executive_id %s: %w", apperrors.ErrNotFound, id, result.Error))
			}
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindExecutiveByID", operation)
	observer.ObserveDbOperationDuration("find_by_id", "sales_executive", time.Since(startTime), findErr)

	if findErr != nil {
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, findErr
		}
		loggerCtx.Error("Failed to find sales executive by ID after retries",
			zap.String("executive_id", id),
			zap.Error(findErr))
		return nil, findErr
	}
	return &exec, nil
}

// FindAllExecutives returns every sales executive ordered by name.
func (r *PostgresRepo) FindAllExecutives(ctx context.Context) ([]model.SalesExecutive, error) {
	loggerCtx := logger.FromContext(ctx)

	var execs []model.SalesExecutive
	operation := func() error {
		result := r.db.WithContext(ctx).
			Order("name ASC").
			Find(&execs)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindAllExecutives", operation)
	observer.ObserveDbOperationDuration("find_all", "sales_executive", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to find sales executives after retries", zap.Error(findErr))
		return nil, findErr
	}
	if execs == nil {
		return []model.SalesExecutive{}, nil
	}
	return execs, nil
}

// SeedExecutives inserts the given executive names if the table is empty.
func (r *PostgresRepo) SeedExecutives(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	loggerCtx := logger.FromContext(ctx)

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SalesExecutive{}).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: failed to count sales executives: %w", apperrors.ErrDatabase, err)
	}
	if count > 0 {
		loggerCtx.Debug("Sales executives already present, skipping seed", zap.Int64("count", count))
		return nil
	}

	execs := make([]model.SalesExecutive, 0, len(names))
	for _, name := range names {
		execs = append(execs, model.SalesExecutive{
			ID:   uuid.New().String(),
			Name: name,
		})
	}

	operation := func() error {
		if createErr := r.db.WithContext(ctx).Create(&execs).Error; createErr != nil {
			return checkConstraintViolation(createErr)
		}
		return nil
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "SeedExecutives", operation)
	observer.ObserveDbOperationDuration("seed", "sales_executive", time.Since(startTime), commitErr)
	if commitErr != nil {
		loggerCtx.Error("Failed to seed sales executives after retries", zap.Error(commitErr))
		return commitErr
	}
	loggerCtx.Info("Seeded sales executives", zap.Int("count", len(execs)))
	return nil
}
