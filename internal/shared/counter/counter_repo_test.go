package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupCounterTest(t *testing.T) (counter.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return counter.NewRepository(gdb), mock
}

func TestRepository_GetNextValue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns incremented value", func(t *testing.T) {
		repo, mock := setupCounterTest(t)

		mock.ExpectQuery(`INSERT INTO company_counters .* ON CONFLICT \(company_id, counter_type\) DO UPDATE .* RETURNING last_value`).
			WithArgs(int64(1), counter.EmployeeNumber).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(124)))

		got, err := repo.GetNextValue(ctx, 1, counter.EmployeeNumber)

		assert.NoError(t, err)
		assert.Equal(t, int64(124), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := setupCounterTest(t)

		mock.ExpectQuery(`INSERT INTO company_counters`).
			WillReturnError(errors.New("db down"))

		got, err := repo.GetNextValue(ctx, 1, counter.EmployeeNumber)

		assert.Error(t, err)
		assert.Zero(t, got)
	})
}
