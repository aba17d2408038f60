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

func TestPostgresRepo_CreateExecutive_Success(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	exec := model.SalesExecutive{ID: "exec-1", Name: "Tanvir Ahmed"}

	insertSQL := `INSERT INTO "sales_executives" ("id","name","created_at") VALUES ($1,$2,$3)`
	mock.ExpectExec(insertSQL).
		WithArgs(exec.ID, exec.Name, AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateExecutive(ctx, &exec)
	assert.NoError(t, err)
}

func TestPostgresRepo_CreateExecutive_GeneratesID(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	exec := model.SalesExecutive{Name: "Nusrat Jahan"}

	insertSQL := `INSERT INTO "sales_executives" ("id","name","created_at") VALUES ($1,$2,$3)`
	mock.ExpectExec(insertSQL).
		WithArgs(sqlmock.AnyArg(), exec.Name, AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateExecutive(ctx, &exec)
	assert.NoError(t, err)
	assert.NotEmpty(t, exec.ID)
}

func TestPostgresRepo_FindExecutiveByID_Found(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "name", "created_at"}
	rows := sqlmock.NewRows(cols).AddRow("exec-find-1", "Imran Hossain", now)
	selectSQL := `SELECT * FROM "sales_executives" WHERE id = $1 ORDER BY "sales_executives"."id" LIMIT $2`
	mock.ExpectQuery(selectSQL).WithArgs("exec-find-1", 1).WillReturnRows(rows)

	found, err := repo.FindExecutiveByID(ctx, "exec-find-1")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Imran Hossain", found.Name)
}

func TestPostgresRepo_FindExecutiveByID_NotFound(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	selectSQL := `SELECT * FROM "sales_executives" WHERE id = $1 ORDER BY "sales_executives"."id" LIMIT $2`
	mock.ExpectQuery(selectSQL).WithArgs("exec-404", 1).WillReturnError(gorm.ErrRecordNotFound)

	found, err := repo.FindExecutiveByID(ctx, "exec-404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, found)
}

func TestPostgresRepo_FindAllExecutives(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	cols := []string{"id", "name"}
	rows := sqlmock.NewRows(cols).
		AddRow("exec-a", "Anika").
		AddRow("exec-b", "Bashir")
	selectSQL := `SELECT * FROM "sales_executives" ORDER BY name ASC`
	mock.ExpectQuery(selectSQL).WillReturnRows(rows)

	execs, err := repo.FindAllExecutives(ctx)
	assert.NoError(t, err)
	assert.Len(t, execs, 2)
	assert.Equal(t, "Anika", execs[0].Name)
}

func TestPostgresRepo_SeedExecutives_SkipsWhenPopulated(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	countSQL := `SELECT count(*) FROM "sales_executives"`
	mock.ExpectQuery(countSQL).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := repo.SeedExecutives(ctx, []string{"A", "B"})
	assert.NoError(t, err)
}

func TestPostgresRepo_SeedExecutives_InsertsWhenEmpty(t *testing.T) {
	repo, mock, teardown := newTestRepo(t)
	t.Cleanup(teardown)
	ctx := context.Background()

	countSQL := `SELECT count(*) FROM "sales_executives"`
	mock.ExpectQuery(countSQL).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	insertSQL := `INSERT INTO "sales_executives" ("id","name","created_at") VALUES ($1,$2,$3),($4,$5,$6)`
	mock.ExpectExec(insertSQL).
		WithArgs(sqlmock.AnyArg(), "Tanvir Ahmed", AnyTime{}, sqlmock.AnyArg(), "Nusrat Jahan", AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.SeedExecutives(ctx, []string{"Tanvir Ahmed", "Nusrat Jahan"})
	assert.NoError(t, err)
}

func TestPostgresRepo_SeedExecutives_NoNames(t *testing.T) {
	repo, _, teardown := newTestRepo(t)
	t.Cleanup(teardown)

	// No query expected at all
	err := repo.SeedExecutives(context.Background(), nil)
	assert.NoError(t, err)
}
