package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

func TestNameResolver_Resolves(t *testing.T) {
	leads := []model.Lead{
		{ID: "lead-1", BusinessName: "Meridian Textiles"},
		{ID: "lead-2", BusinessName: "Delta Logistics"},
	}
	execs := []model.SalesExecutive{
		{ID: "exec-1", Name: "Tanvir Ahmed"},
	}
	r := NewNameResolver(leads, execs)

	assert.Equal(t, "Meridian Textiles", r.LeadName("lead-1"))
	assert.Equal(t, "Delta Logistics", r.LeadName("lead-2"))
	assert.Equal(t, "Tanvir Ahmed", r.ExecName("exec-1"))
}

func TestNameResolver_MissingReference(t *testing.T) {
	r := NewNameResolver(nil, nil)

	assert.Equal(t, PlaceholderName, r.LeadName("ghost"))
	assert.Equal(t, PlaceholderName, r.ExecName("ghost"))
}

func TestNameResolver_EmptyName(t *testing.T) {
	r := NewNameResolver(
		[]model.Lead{{ID: "lead-1", BusinessName: ""}},
		[]model.SalesExecutive{{ID: "exec-1", Name: ""}},
	)

	assert.Equal(t, PlaceholderName, r.LeadName("lead-1"))
	assert.Equal(t, PlaceholderName, r.ExecName("exec-1"))
}

func TestNameResolver_Enrich(t *testing.T) {
	r := NewNameResolver(
		[]model.Lead{{ID: "lead-1", BusinessName: "Meridian Textiles"}},
		[]model.SalesExecutive{{ID: "exec-1", Name: "Tanvir Ahmed"}},
	)
	cl := model.NewFakeCallLog(&model.CallLog{LeadID: "lead-1", SalesExecID: "exec-1"})

	view := r.Enrich(*cl)
	assert.Equal(t, cl.ID, view.ID)
	assert.Equal(t, "Meridian Textiles", view.BusinessName)
	assert.Equal(t, "Tanvir Ahmed", view.SalesExecName)
}
