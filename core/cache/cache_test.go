package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewStore(gormDB), mock
}

func TestGetHit(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"key", "value", "expires_at"}).
		AddRow("official:42", `{"updates":[]}`, time.Now().Add(time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(rows)

	value, ok, err := store.Get(context.Background(), "official:42")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, json.RawMessage(`{"updates":[]}`), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMiss(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at"}))

	value, ok, err := store.Get(context.Background(), "social:7")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQueriesWithClock(t *testing.T) {
	store, mock := setupMockStore(t)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	mock.ExpectQuery(`SELECT \* FROM "cache"`).
		WithArgs("geocode:flood", fixed).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at"}))

	_, ok, err := store.Get(context.Background(), "geocode:flood")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutUpserts(t *testing.T) {
	store, mock := setupMockStore(t)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).
		WithArgs("official:42", `{"updates":[]}`, fixed.Add(5*time.Minute)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Put(context.Background(), "official:42", json.RawMessage(`{"updates":[]}`), 5*time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutDefaultTTL(t *testing.T) {
	store, mock := setupMockStore(t)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).
		WithArgs("k", `1`, fixed.Add(DefaultTTL)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Put(context.Background(), "k", json.RawMessage(`1`), 0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
