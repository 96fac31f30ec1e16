package history_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-hrm/internal/history"
	historyMock "go-hrm/internal/history/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func setupLogTest(t *testing.T, opts ...history.Option) (history.Log, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	opts = append([]history.Option{history.WithClock(func() time.Time { return fixedNow })}, opts...)
	return history.NewLog(gdb, opts...), mock
}

const insertQuery = `INSERT INTO "hr_employee_history" ("employee_id","module","category","type","comment","data","date") VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING "id"`

func TestLog_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("partial entry gets defaults and is recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := historyMock.NewMockRecorder(ctrl)
		log, mock := setupLogTest(t, history.WithRecorder(rec))

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
			WithArgs(int64(7), "employment", "", "terminated", "", "", fixedNow).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
		mock.ExpectCommit()
		rec.EXPECT().RecordHistoryAppend("employment")

		got, err := log.Append(ctx, history.Entry{EmployeeID: 7, Module: "employment", Type: "terminated"})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, fixedNow, got.Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit date is kept", func(t *testing.T) {
		log, mock := setupLogTest(t)
		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
			WithArgs(int64(7), "compensation", "monthly", "2000", "raise", "promotion", date).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(43)))
		mock.ExpectCommit()

		got, err := log.Append(ctx, history.Entry{
			EmployeeID: 7,
			Module:     "compensation",
			Category:   "monthly",
			Type:       "2000",
			Comment:    "raise",
			Data:       "promotion",
			Date:       date,
		})

		assert.NoError(t, err)
		assert.Equal(t, date, got.Date)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		log, mock := setupLogTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).WillReturnError(errors.New("db down"))
		mock.ExpectRollback()

		_, err := log.Append(ctx, history.Entry{EmployeeID: 7, Module: "job"})

		assert.Error(t, err)
	})
}

func TestLog_ListFor(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		log, mock := setupLogTest(t)

		rows := sqlmock.NewRows([]string{"id", "employee_id", "module", "category", "type", "comment", "data", "date"}).
			AddRow(int64(3), int64(7), "job", "Research", "", "Engineer", "5", fixedNow).
			AddRow(int64(1), int64(7), "employment", "", "permanent", "", "", fixedNow)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hr_employee_history" WHERE employee_id = $1 ORDER BY id DESC`)).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		entries, err := log.ListFor(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(3), entries[0].ID)
		assert.Equal(t, "Engineer", entries[0].Comment)
	})

	t.Run("zero employee has no history", func(t *testing.T) {
		log, mock := setupLogTest(t)

		entries, err := log.ListFor(ctx, 0)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
