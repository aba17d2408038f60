package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/storage"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/validator"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// ReportService handles call report intake: exhaustive validation of the
// tagged-union submission at the boundary, referential checks before any
// write, and a single transaction for the new-lead branch so a failed log
// write never leaves an orphaned lead behind.
type ReportService struct {
	callLogRepo storage.CallLogRepo
	leadRepo    storage.LeadRepo
	execRepo    storage.SalesExecutiveRepo
}

// NewReportService creates a report intake service.
func NewReportService(callLogRepo storage.CallLogRepo, leadRepo storage.LeadRepo, execRepo storage.SalesExecutiveRepo) *ReportService {
	return &ReportService{
		callLogRepo: callLogRepo,
		leadRepo:    leadRepo,
		execRepo:    execRepo,
	}
}

// SubmitCallReport validates and persists one call report. It returns the
// stored call log, whose LeadID points at the newly created lead on the
// new-lead branch.
func (s *ReportService) SubmitCallReport(ctx context.Context, report model.CallReport) (*model.CallLog, error) {
	log := logger.FromContext(ctx)
	start := utils.Now()

	if err := s.validateReport(report); err != nil {
		observer.IncReportSubmission(string(report.LeadType), "rejected")
		log.Warn("Call report rejected",
			zap.String("sales_exec_id", report.SalesExecID),
			zap.String("lead_type", string(report.LeadType)),
			zap.Error(err))
		return nil, err
	}

	// Referential checks happen before any write.
	if _, err := s.execRepo.FindByID(ctx, report.SalesExecID); err != nil {
		observer.IncReportSubmission(string(report.LeadType), "rejected")
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: sales executive %s", apperrors.ErrNotFound, report.SalesExecID)
		}
		return nil, err
	}

	callLog := s.buildCallLog(report)

	var err error
	if report.LeadType == model.LeadTypeNew {
		lead := &model.Lead{
			ID:           uuid.New().String(),
			BusinessName: report.BusinessName,
			ContactName:  report.ContactName,
			ContactPhone: report.ContactPhone,
			ContactEmail: report.ContactEmail,
			City:         report.City,
			LeadSource:   report.LeadSource,
			Industry:     report.Industry,
			CompanySize:  report.CompanySize,
		}
		callLog.LeadID = lead.ID
		err = s.callLogRepo.CreateWithLead(ctx, lead, callLog)
	} else {
		if _, ferr := s.leadRepo.FindByID(ctx, report.LeadID); ferr != nil {
			observer.IncReportSubmission(string(report.LeadType), "rejected")
			if errors.Is(ferr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: lead %s", apperrors.ErrNotFound, report.LeadID)
			}
			return nil, ferr
		}
		callLog.LeadID = report.LeadID
		err = s.callLogRepo.Create(ctx, callLog)
	}

	if err != nil {
		observer.IncReportSubmission(string(report.LeadType), "error")
		log.Error("Failed to persist call report",
			zap.String("sales_exec_id", report.SalesExecID),
			zap.String("lead_type", string(report.LeadType)),
			zap.Error(err))
		return nil, err
	}

	observer.IncReportSubmission(string(report.LeadType), "accepted")
	log.Info("Call report stored",
		zap.String("call_log_id", callLog.ID),
		zap.String("lead_id", callLog.LeadID),
		zap.String("sales_exec_id", callLog.SalesExecID),
		zap.Duration("duration", time.Since(start)))
	return callLog, nil
}

// validateReport enforces the tagged-union rules the struct tags cannot
// express: per lead-type, per outcome, and per stage conditionals.
func (s *ReportService) validateReport(report model.CallReport) error {
	if err := validator.Validate(report); err != nil {
		return err
	}

	if !report.LeadType.Valid() {
		return fmt.Errorf("%w: unknown lead_type %q", apperrors.ErrValidation, report.LeadType)
	}
	if !report.CallOutcome.Valid() {
		return fmt.Errorf("%w: unknown call_outcome %q", apperrors.ErrValidation, report.CallOutcome)
	}

	switch report.LeadType {
	case model.LeadTypeNew:
		if report.BusinessName == "" {
			return fmt.Errorf("%w: business_name is required for a new lead", apperrors.ErrValidation)
		}
		if report.ContactName == "" {
			return fmt.Errorf("%w: contact_name is required for a new lead", apperrors.ErrValidation)
		}
		if report.ContactPhone == "" {
			return fmt.Errorf("%w: contact_phone is required for a new lead", apperrors.ErrValidation)
		}
	case model.LeadTypeExisting:
		if report.LeadID == "" {
			return fmt.Errorf("%w: lead_id is required for an existing lead", apperrors.ErrValidation)
		}
	}

	if report.CallOutcome.Reached() {
		if report.ServicePitched == "" {
			return fmt.Errorf("%w: service_pitched is required when the call was answered", apperrors.ErrValidation)
		}
		if report.InterestLevel == "" {
			return fmt.Errorf("%w: interest_level is required when the call was answered", apperrors.ErrValidation)
		}
		if !report.InterestLevel.Valid() {
			return fmt.Errorf("%w: unknown interest_level %q", apperrors.ErrValidation, report.InterestLevel)
		}
	}

	if report.NextStepRequired && report.FollowUpDate == "" {
		return fmt.Errorf("%w: follow_up_date is required when next_step_required is set", apperrors.ErrValidation)
	}
	if report.FollowUpDate != "" {
		if _, err := utils.ParseDay(report.FollowUpDate); err != nil {
			return fmt.Errorf("%w: invalid follow_up_date %q", apperrors.ErrValidation, report.FollowUpDate)
		}
	}

	if report.LeadStage != "" && !report.LeadStage.Valid() {
		return fmt.Errorf("%w: unknown lead_stage %q", apperrors.ErrValidation, report.LeadStage)
	}
	if report.LeadStage == model.StageDemoScheduled && report.DemoDate == "" {
		return fmt.Errorf("%w: demo_date is required when a demo is scheduled", apperrors.ErrValidation)
	}
	if report.DemoDate != "" {
		if _, err := utils.ParseDay(report.DemoDate); err != nil {
			return fmt.Errorf("%w: invalid demo_date %q", apperrors.ErrValidation, report.DemoDate)
		}
	}

	if report.DealValue < 0 {
		return fmt.Errorf("%w: deal_value must not be negative", apperrors.ErrValidation)
	}

	return nil
}

// buildCallLog maps an accepted report onto the stored call log row. The
// call date defaults to submission time.
func (s *ReportService) buildCallLog(report model.CallReport) *model.CallLog {
	callLog := &model.CallLog{
		ID:               uuid.New().String(),
		Date:             utils.Now(),
		SalesExecID:      report.SalesExecID,
		LeadType:         report.LeadType,
		CallOutcome:      report.CallOutcome,
		NextStepRequired: report.NextStepRequired,
		LeadStage:        report.LeadStage,
		ProposalSent:     report.ProposalSent,
		Remarks:          report.Remarks,
	}

	if report.CallOutcome.Reached() {
		callLog.ServicePitched = report.ServicePitched
		callLog.InterestLevel = report.InterestLevel
	}
	if report.FollowUpDate != "" {
		if day, err := utils.ParseDay(report.FollowUpDate); err == nil {
			d := datatypes.Date(day)
			callLog.FollowUpDate = &d
		}
	}
	if report.DemoDate != "" {
		if day, err := utils.ParseDay(report.DemoDate); err == nil {
			d := datatypes.Date(day)
			callLog.DemoDate = &d
		}
	}
	if report.DealValue > 0 {
		v := report.DealValue
		callLog.DealValue = &v
	}
	return callLog
}
