package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	run := &Run{
		ID:         "7d4a3f2e-6a1b-4c2d-9e8f-0a1b2c3d4e5f",
		StartedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationMS: 1500,
		ItemCount:  42,
		Status:     StatusOK,
		Output:     "export.json",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `runs`").
		WithArgs(run.ID, run.StartedAt, run.DurationMS, run.ItemCount, run.Status, run.Error, run.Output).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Record(context.Background(), run)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"id", "started_at", "duration_ms", "item_count", "status", "error", "output"}).
		AddRow("run-2", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), 900, 10, StatusOK, "", "b.json").
		AddRow("run-1", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 2100, 0, StatusFailed, "boom", "a.json")

	mock.ExpectQuery("SELECT \\* FROM `runs` ORDER BY started_at DESC LIMIT \\?").
		WithArgs(2).
		WillReturnRows(rows)

	runs, err := store.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, StatusOK, runs[0].Status)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "boom", runs[1].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentDefaultLimit(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `runs` ORDER BY started_at DESC LIMIT \\?").
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	runs, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "postgres"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown history driver")
}
