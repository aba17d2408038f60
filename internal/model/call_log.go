package model

import (
	"time"

	"gorm.io/datatypes"
)

// LeadType distinguishes reports against a freshly captured lead from
// reports against one already in the book.
type LeadType string

const (
	LeadTypeNew      LeadType = "New Lead"
	LeadTypeExisting LeadType = "Existing Lead"
)

// Valid reports whether lt is a known lead type.
func (lt LeadType) Valid() bool {
	switch lt {
	case LeadTypeNew, LeadTypeExisting:
		return true
	}
	return false
}

// CallOutcome is the result of a single outreach attempt.
type CallOutcome string

const (
	OutcomeConnected    CallOutcome = "Connected"
	OutcomeNotConnected CallOutcome = "Not Connected"
	OutcomeWrongNumber  CallOutcome = "Wrong Number"
	OutcomeCallBack     CallOutcome = "Call Back Later"
)

// Valid reports whether co is a known call outcome.
func (co CallOutcome) Valid() bool {
	switch co {
	case OutcomeConnected, OutcomeNotConnected, OutcomeWrongNumber, OutcomeCallBack:
		return true
	}
	return false
}

// Reached reports whether the outcome involved an actual conversation,
// which is when pitch details (service, interest level) are captured.
func (co CallOutcome) Reached() bool {
	return co == OutcomeConnected || co == OutcomeCallBack
}

// InterestLevel is the prospect enthusiasm signal captured per call.
type InterestLevel string

const (
	InterestHigh          InterestLevel = "High"
	InterestMedium        InterestLevel = "Medium"
	InterestLow           InterestLevel = "Low"
	InterestNotInterested InterestLevel = "Not Interested"
)

// Valid reports whether il is a known interest level.
func (il InterestLevel) Valid() bool {
	switch il {
	case InterestHigh, InterestMedium, InterestLow, InterestNotInterested:
		return true
	}
	return false
}

// LeadStage is the opportunity's position in the sales pipeline.
type LeadStage string

const (
	StageInDiscussion  LeadStage = "In Discussion"
	StageDemoScheduled LeadStage = "Demo Scheduled"
	StageProposalSent  LeadStage = "Proposal Sent"
	StageNegotiation   LeadStage = "Negotiation"
	StageClosedWon     LeadStage = "Closed Won"
	StageClosedLost    LeadStage = "Closed Lost"
)

// Valid reports whether ls is a known lead stage.
func (ls LeadStage) Valid() bool {
	switch ls {
	case StageInDiscussion, StageDemoScheduled, StageProposalSent,
		StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// CallLog represents one call-outcome report in the PostgreSQL database.
// Append-only; rows are never mutated or deleted after submission.
type CallLog struct {
	ID               string          `json:"id" gorm:"primaryKey;type:text"`
	Date             time.Time       `json:"date" gorm:"index;type:timestamptz" validate:"required"`
	SalesExecID      string          `json:"sales_exec_id" gorm:"index;type:text" validate:"required"`
	LeadID           string          `json:"lead_id" gorm:"index;type:text" validate:"required"`
	LeadType         LeadType        `json:"lead_type" gorm:"type:text" validate:"required"`
	CallOutcome      CallOutcome     `json:"call_outcome" gorm:"type:text" validate:"required"`
	ServicePitched   string          `json:"service_pitched,omitempty" gorm:"type:text"`
	InterestLevel    InterestLevel   `json:"interest_level,omitempty" gorm:"type:text"`
	NextStepRequired bool            `json:"next_step_required,omitempty"`
	FollowUpDate     *datatypes.Date `json:"follow_up_date,omitempty" gorm:"index;type:date"`
	LeadStage        LeadStage       `json:"lead_stage,omitempty" gorm:"type:text"`
	DemoDate         *datatypes.Date `json:"demo_date,omitempty" gorm:"type:date"`
	ProposalSent     bool            `json:"proposal_sent,omitempty"`
	DealValue        *float64        `json:"deal_value,omitempty" gorm:"type:numeric"`
	Remarks          string          `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the CallLog model.
func (CallLog) TableName() string {
	return "call_logs"
}

// DealValueOrZero returns the recorded deal value, treating a null column as
// zero so aggregation never trips on sparse rows.
func (cl *CallLog) DealValueOrZero() float64 {
	if cl.DealValue == nil {
		return 0
	}
	return *cl.DealValue
}
