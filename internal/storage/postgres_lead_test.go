package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
)

func TestPostgresRepo_CreateLead_Success(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	lead := model.Lead{
		ID:           "lead-1",
		BusinessName: "Rahim Traders",
		ContactName:  "Abdul Rahim",
		ContactPhone: "01711000000",
		City:         "Dhaka",
		LeadSource:   "Referral",
	}

	insertSQL := `INSERT INTO "leads" ("id","business_name","contact_name","contact_phone","contact_email","city","lead_source","industry","company_size","created_at") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	mock.ExpectExec(insertSQL).
		WithArgs(lead.ID, lead.BusinessName, lead.ContactName, lead.ContactPhone, lead.ContactEmail, lead.City, lead.LeadSource, lead.Industry, lead.CompanySize, AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateLead(ctx, &lead)
	assert.NoError(t, err)
}

func TestPostgresRepo_CreateLead_Duplicate(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	lead := model.Lead{ID: "lead-dup", BusinessName: "Dup Co", ContactName: "Dup"}

	insertSQL := `INSERT INTO "leads" ("id","business_name","contact_name","contact_phone","contact_email","city","lead_source","industry","company_size","created_at") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	mock.ExpectExec(insertSQL).
		WithArgs(lead.ID, lead.BusinessName, lead.ContactName, "", "", "", "", "", "", AnyTime{}).
		WillReturnError(&duplicatePgError)

	err := repo.CreateLead(ctx, &lead)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestPostgresRepo_FindLeadByID_Found(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "business_name", "contact_name", "city", "created_at"}
	rows := sqlmock.NewRows(cols).AddRow("lead-find-1", "Karim Stores", "Karim", "Chattogram", now)
	selectSQL := `SELECT * FROM "leads" WHERE id = $1 ORDER BY "leads"."id" LIMIT $2`
	mock.ExpectQuery(selectSQL).WithArgs("lead-find-1", 1).WillReturnRows(rows)

	found, err := repo.FindLeadByID(ctx, "lead-find-1")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Karim Stores", found.BusinessName)
}

func TestPostgresRepo_FindLeadByID_NotFound(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	selectSQL := `SELECT * FROM "leads" WHERE id = $1 ORDER BY "leads"."id" LIMIT $2`
	mock.ExpectQuery(selectSQL).WithArgs("lead-404", 1).WillReturnError(gorm.ErrRecordNotFound)

	found, err := repo.FindLeadByID(ctx, "lead-404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, found)
}

func TestPostgresRepo_FindAllLeads(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "business_name", "contact_name", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("lead-2", "Newest Co", "B", now).
		AddRow("lead-1", "Oldest Co", "A", now.Add(-time.Hour))
	selectSQL := `SELECT * FROM "leads" ORDER BY created_at DESC`
	mock.ExpectQuery(selectSQL).WillReturnRows(rows)

	leads, err := repo.FindAllLeads(ctx)
	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "Newest Co", leads[0].BusinessName)
}

func TestPostgresRepo_FindAllLeads_Empty(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	selectSQL := `SELECT * FROM "leads" ORDER BY created_at DESC`
	mock.ExpectQuery(selectSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	leads, err := repo.FindAllLeads(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestPostgresRepo_FindLeadsByIDs(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	cols := []string{"id", "business_name", "contact_name"}
	rows := sqlmock.NewRows(cols).
		AddRow("lead-a", "Alpha", "A").
		AddRow("lead-b", "Beta", "B")
	selectSQL := `SELECT * FROM "leads" WHERE id IN ($1,$2)`
	mock.ExpectQuery(selectSQL).WithArgs("lead-a", "lead-b").WillReturnRows(rows)

	leads, err := repo.FindLeadsByIDs(ctx, []string{"lead-a", "lead-b"})
	assert.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestPostgresRepo_FindLeadsByIDs_EmptyInput(t *testing.T) {
	repo, _, teardown := newTestRepo(t)
	t.Cleanup(teardown)

	// No query expected at all
	leads, err := repo.FindLeadsByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, leads)
}
