package model

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/datatypes"

	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// init ensures gofakeit is seeded.
func init() {
	gofakeit.Seed(time.Now().UnixNano())
}

// DateOf wraps a calendar day as a nullable date column value.
func DateOf(t time.Time) *datatypes.Date {
	d := datatypes.Date(utils.StartOfDay(t))
	return &d
}

// Float64Of returns a pointer to v, for nullable numeric columns.
func Float64Of(v float64) *float64 {
	return &v
}

// NewFakeLead creates a Lead instance with default fake data.
func NewFakeLead(overrideDefaults ...*Lead) *Lead {
	base := &Lead{
		ID:           gofakeit.UUID(),
		BusinessName: gofakeit.Company(),
		ContactName:  gofakeit.Name(),
		ContactPhone: gofakeit.Phone(),
		ContactEmail: gofakeit.Email(),
		City:         gofakeit.City(),
		LeadSource:   gofakeit.RandomString([]string{"LinkedIn", "Referral", "Cold Call", "Website", "Other"}),
		Industry:     gofakeit.RandomString([]string{"IT", "Finance", "Healthcare", "Retail", "Other"}),
		CompanySize:  gofakeit.RandomString([]string{"1-10", "11-50", "51-200", "201-500", "500+"}),
		CreatedAt:    utils.Now().Add(-time.Duration(gofakeit.Number(1, 720)) * time.Hour),
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if ovr.BusinessName != "" {
			base.BusinessName = ovr.BusinessName
		}
		if ovr.ContactName != "" {
			base.ContactName = ovr.ContactName
		}
		if ovr.ContactPhone != "" {
			base.ContactPhone = ovr.ContactPhone
		}
		if ovr.ContactEmail != "" {
			base.ContactEmail = ovr.ContactEmail
		}
		if ovr.City != "" {
			base.City = ovr.City
		}
		if ovr.LeadSource != "" {
			base.LeadSource = ovr.LeadSource
		}
		if ovr.Industry != "" {
			base.Industry = ovr.Industry
		}
		if ovr.CompanySize != "" {
			base.CompanySize = ovr.CompanySize
		}
		if !ovr.CreatedAt.IsZero() {
			base.CreatedAt = ovr.CreatedAt
		}
	}
	return base
}

// NewFakeExecutive creates a SalesExecutive instance with default fake data.
func NewFakeExecutive(overrideDefaults ...*SalesExecutive) *SalesExecutive {
	base := &SalesExecutive{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.Name(),
		CreatedAt: utils.Now().Add(-time.Duration(gofakeit.Number(1, 720)) * time.Hour),
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if ovr.Name != "" {
			base.Name = ovr.Name
		}
		if !ovr.CreatedAt.IsZero() {
			base.CreatedAt = ovr.CreatedAt
		}
	}
	return base
}

// NewFakeCallLog creates a CallLog instance with default fake data. The
// default row is a connected call so the conditional fields are populated;
// pass overrides to build sparser rows.
func NewFakeCallLog(overrideDefaults ...*CallLog) *CallLog {
	now := utils.Now()
	base := &CallLog{
		ID:               gofakeit.UUID(),
		Date:             now.Add(-time.Duration(gofakeit.Number(0, 72)) * time.Hour),
		SalesExecID:      gofakeit.UUID(),
		LeadID:           gofakeit.UUID(),
		LeadType:         LeadTypeExisting,
		CallOutcome:      OutcomeConnected,
		ServicePitched:   gofakeit.RandomString([]string{"Cloud PBX", "SIP Trunk", "UCaaS"}),
		InterestLevel:    InterestMedium,
		NextStepRequired: true,
		FollowUpDate:     DateOf(now.AddDate(0, 0, gofakeit.Number(1, 14))),
		LeadStage:        StageInDiscussion,
		Remarks:          gofakeit.Sentence(8),
		CreatedAt:        now,
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if !ovr.Date.IsZero() {
			base.Date = ovr.Date
		}
		if ovr.SalesExecID != "" {
			base.SalesExecID = ovr.SalesExecID
		}
		if ovr.LeadID != "" {
			base.LeadID = ovr.LeadID
		}
		if ovr.LeadType != "" {
			base.LeadType = ovr.LeadType
		}
		if ovr.CallOutcome != "" {
			base.CallOutcome = ovr.CallOutcome
			if !ovr.CallOutcome.Reached() {
				base.ServicePitched = ""
				base.InterestLevel = ""
				base.NextStepRequired = false
				base.FollowUpDate = nil
				base.LeadStage = ""
			}
		}
		if ovr.ServicePitched != "" {
			base.ServicePitched = ovr.ServicePitched
		}
		if ovr.InterestLevel != "" {
			base.InterestLevel = ovr.InterestLevel
		}
		if ovr.FollowUpDate != nil {
			base.FollowUpDate = ovr.FollowUpDate
		}
		if ovr.LeadStage != "" {
			base.LeadStage = ovr.LeadStage
		}
		if ovr.DemoDate != nil {
			base.DemoDate = ovr.DemoDate
		}
		if ovr.DealValue != nil {
			base.DealValue = ovr.DealValue
		}
		if ovr.Remarks != "" {
			base.Remarks = ovr.Remarks
		}
		if !ovr.CreatedAt.IsZero() {
			base.CreatedAt = ovr.CreatedAt
		}
		base.ProposalSent = ovr.ProposalSent
	}
	return base
}
