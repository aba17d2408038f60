package model

// DashboardStats carries the seven summary counters shown on the dashboard.
// FollowUpsDue is the one look-ahead number: it counts follow-ups falling on
// the day after the reporting window across the entire log table.
type DashboardStats struct {
	TotalCalls     int     `json:"totalCalls"`
	ConnectedCalls int     `json:"connectedCalls"`
	NewLeads       int     `json:"newLeads"`
	DemosScheduled int     `json:"demosScheduled"`
	DealsClosed    int     `json:"dealsClosed"`
	TotalDealValue float64 `json:"totalDealValue"`
	FollowUpsDue   int     `json:"followUpsDue"`
}

// TrendPoint is one calendar day of the daily call trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Connected int    `json:"connected"`
}

// ChartDatum is one slice of a categorical distribution.
type ChartDatum struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CallLogView is a call log enriched with display names resolved from the
// lead and sales-executive reference tables.
type CallLogView struct {
	CallLog
	BusinessName  string `json:"business_name"`
	SalesExecName string `json:"sales_exec_name"`
}

// DashboardOverview bundles everything a dashboard page load needs.
type DashboardOverview struct {
	Stats          DashboardStats `json:"stats"`
	DailyTrend     []TrendPoint   `json:"dailyCallTrend"`
	InterestLevels []ChartDatum   `json:"interestLevelDistribution"`
	LeadStages     []ChartDatum   `json:"leadStageDistribution"`
}

// DailySummaryInput is the flat record handed to the summary generator. The
// field set mirrors what the email prompt consumes: the day's numbers, the
// executive's display name, and one representative highlight.
type DailySummaryInput struct {
	Date           string  `json:"date"`
	TotalCalls     int     `json:"totalCalls"`
	ConnectedCalls int     `json:"connectedCalls"`
	NewLeadsAdded  int     `json:"newLeadsAdded"`
	DemosScheduled int     `json:"demosScheduled"`
	DealsClosed    int     `json:"dealsClosed"`
	TotalDealValue float64 `json:"totalDealValue"`
	FollowUpsSet   int     `json:"followUpsSet"`
	SalesExecName  string  `json:"salesExecName"`
	BusinessName   string  `json:"businessName"`
	InterestLevel  string  `json:"interestLevel"`
	LeadStage      string  `json:"leadStage"`
	FollowUpDate   string  `json:"followUpDate"`
}

// DailySummaryEmail is the generated email content.
type DailySummaryEmail struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody"`
}
