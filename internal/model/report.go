package model

// CallReport is a call-outcome submission as received from the report form.
// Simple field rules live in validate tags; the cross-field rules that depend
// on lead type, outcome and stage are enforced by the report service.
type CallReport struct {
	SalesExecID string      `json:"sales_exec_id" validate:"required"`
	LeadType    LeadType    `json:"lead_type" validate:"required"`
	CallOutcome CallOutcome `json:"call_outcome" validate:"required"`

	// Existing-lead branch
	LeadID string `json:"lead_id,omitempty"`

	// New-lead branch
	BusinessName string `json:"business_name,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	LeadSource   string `json:"lead_source,omitempty"`
	Industry     string `json:"industry,omitempty"`
	CompanySize  string `json:"company_size,omitempty"`
	City         string `json:"city,omitempty"`

	// Reached-call branch (Connected / Call Back Later)
	ServicePitched string        `json:"service_pitched,omitempty"`
	InterestLevel  InterestLevel `json:"interest_level,omitempty"`

	// Opportunity progress
	NextStepRequired bool      `json:"next_step_required,omitempty"`
	FollowUpDate     string    `json:"follow_up_date,omitempty"` // yyyy-mm-dd
	LeadStage        LeadStage `json:"lead_stage,omitempty"`
	DemoDate         string    `json:"demo_date,omitempty"` // yyyy-mm-dd
	ProposalSent     bool      `json:"proposal_sent,omitempty"`
	DealValue        float64   `json:"deal_value,omitempty" validate:"gte=0"`
	Remarks          string    `json:"remarks,omitempty"`
}
