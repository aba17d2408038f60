package usecase

import (
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

// PlaceholderName marks a reference that no longer resolves. Referential
// gaps on the read path are recovered with this label, never escalated.
const PlaceholderName = "N/A"

// NameResolver joins call-log rows to lead and sales-executive display
// names via in-memory id indexes.
type NameResolver struct {
	leadNames map[string]string
	execNames map[string]string
}

// NewNameResolver builds the id indexes from the reference sets.
func NewNameResolver(leads []model.Lead, execs []model.SalesExecutive) *NameResolver {
	r := &NameResolver{
		leadNames: make(map[string]string, len(leads)),
		execNames: make(map[string]string, len(execs)),
	}
	for _, l := range leads {
		r.leadNames[l.ID] = l.BusinessName
	}
	for _, e := range execs {
		r.execNames[e.ID] = e.Name
	}
	return r
}

// LeadName resolves a lead id to its business name.
func (r *NameResolver) LeadName(id string) string {
	if name, ok := r.leadNames[id]; ok && name != "" {
		return name
	}
	return PlaceholderName
}

// ExecName resolves a sales executive id to its display name.
func (r *NameResolver) ExecName(id string) string {
	if name, ok := r.execNames[id]; ok && name != "" {
		return name
	}
	return PlaceholderName
}

// Enrich flattens a call log with its resolved display names.
func (r *NameResolver) Enrich(log model.CallLog) model.CallLogView {
	return model.CallLogView{
		CallLog:       log,
		BusinessName:  r.LeadName(log.LeadID),
		SalesExecName: r.ExecName(log.SalesExecID),
	}
}
