package aggregate_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"disasterhub/core/aggregate"
	"disasterhub/core/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupOrchestrator(t *testing.T) (*aggregate.Orchestrator, sqlmock.Sqlmock) {
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

	return aggregate.New(cache.NewStore(gormDB), nil, zap.NewNop()), mock
}

func cacheRow(key, value string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"key", "value", "expires_at"}).
		AddRow(key, value, time.Now().Add(time.Hour))
}

func emptyCache() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"key", "value", "expires_at"})
}

func TestDoCacheHitSkipsProviders(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).
		WillReturnRows(cacheRow("official:42", `{"updates":[]}`))

	fetched := false
	onFresh := false
	result, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "official-updates",
		Key:      "official:42",
		Fetch: func(ctx context.Context) (any, error) {
			fetched = true
			return nil, nil
		},
		OnFresh: func(json.RawMessage) { onFresh = true },
	})

	assert.NoError(t, err)
	assert.True(t, result.Cached)
	assert.False(t, fetched, "providers must not run on a hit")
	assert.False(t, onFresh, "no notification on a hit")
	assert.Equal(t, json.RawMessage(`{"updates":[]}`), result.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoCacheMissFetchesAndWritesThrough(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	// Fast path lookup, then the double-check inside the flight.
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	fetches := 0
	var freshPayload json.RawMessage
	result, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "social-media",
		Key:      "social:7",
		Fetch: func(ctx context.Context) (any, error) {
			fetches++
			return map[string]any{"posts": []string{"a"}}, nil
		},
		OnFresh: func(p json.RawMessage) { freshPayload = p },
	})

	assert.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 1, fetches)
	assert.JSONEq(t, `{"posts":["a"]}`, string(result.Payload))
	assert.JSONEq(t, `{"posts":["a"]}`, string(freshPayload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoConcurrentMissesShareOneFetch(t *testing.T) {
	orch, mock := setupOrchestrator(t)
	mock.MatchExpectationsInOrder(false)

	// Three fast-path lookups plus the flight winner's double-check.
	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var fetches atomic.Int32
	op := aggregate.Operation{
		Endpoint: "social-media",
		Key:      "social:99",
		Fetch: func(ctx context.Context) (any, error) {
			fetches.Add(1)
			// Hold the flight open long enough for the other callers to join.
			time.Sleep(150 * time.Millisecond)
			return map[string]any{"posts": []string{"a"}}, nil
		},
	}

	start := make(chan struct{})
	results := make([]aggregate.Result, 3)
	errs := make([]error, 3)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = orch.Do(context.Background(), op)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "concurrent misses on one key share a single fetch")
	for i := range results {
		assert.NoError(t, errs[i])
		assert.JSONEq(t, `{"posts":["a"]}`, string(results[i].Payload))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoDoubleCheckHitReportsCached(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	// Fast path misses, but a sibling wrote through before this caller won
	// the flight: the double-check finds the entry.
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectQuery(`SELECT \* FROM "cache"`).
		WillReturnRows(cacheRow("official:42", `{"updates":[]}`))

	fetched := false
	result, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "official-updates",
		Key:      "official:42",
		Fetch: func(ctx context.Context) (any, error) {
			fetched = true
			return nil, nil
		},
	})

	assert.NoError(t, err)
	assert.True(t, result.Cached, "a double-check hit is still a cache hit")
	assert.False(t, fetched)
	assert.Equal(t, json.RawMessage(`{"updates":[]}`), result.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoWriteThroughFailureIsNotFatal(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	onFresh := false
	result, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "geocode",
		Key:      "geocode:x",
		Fetch: func(ctx context.Context) (any, error) {
			return map[string]any{"ok": true}, nil
		},
		OnFresh: func(json.RawMessage) { onFresh = true },
	})

	assert.NoError(t, err, "a broken cache write must not fail the request")
	assert.False(t, result.Cached)
	assert.True(t, onFresh)
}

func TestDoCacheReadFailureDegradesToMiss(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnError(errors.New("db down"))
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnError(errors.New("db down"))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "official-updates",
		Key:      "official:1",
		Fetch: func(ctx context.Context) (any, error) {
			return map[string]any{"updates": []string{}}, nil
		},
	})

	assert.NoError(t, err)
	assert.False(t, result.Cached)
}

func TestDoFetchErrorPropagates(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(emptyCache())

	wantErr := errors.New("provider exploded")
	_, err := orch.Do(context.Background(), aggregate.Operation{
		Endpoint: "geocode",
		Key:      "geocode:y",
		Fetch: func(ctx context.Context) (any, error) {
			return nil, wantErr
		},
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestResultBodyMergesCachedFlag(t *testing.T) {
	r := aggregate.Result{Cached: true, Payload: json.RawMessage(`{"updates":[1,2]}`)}

	body, err := r.Body()
	assert.NoError(t, err)
	assert.Equal(t, true, body["cached"])
	assert.Len(t, body["updates"], 2)
}

func TestResultBodyEmptyPayload(t *testing.T) {
	r := aggregate.Result{Cached: false}

	body, err := r.Body()
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"cached": false}, body)
}
