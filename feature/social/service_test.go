package social_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"disasterhub/core/aggregate"
	"disasterhub/core/cache"
	"disasterhub/feature/social"

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

type captureHub struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (h *captureHub) Publish(topic string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.topics = append(h.topics, topic)
	h.events = append(h.events, payload)
}

func TestMockProviderPosts(t *testing.T) {
	posts, err := social.MockProvider{}.Posts(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
	for _, p := range posts {
		assert.Equal(t, int64(42), p.DisasterID)
		assert.NotEmpty(t, p.User)
		assert.NotEmpty(t, p.Post)
	}
}

func TestFetchFreshBroadcasts(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	empty := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"key", "value", "expires_at"})
	}
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(empty())
	mock.ExpectQuery(`SELECT \* FROM "cache"`).WillReturnRows(empty())
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cache"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	hub := &captureHub{}
	svc := social.NewService(orch, social.MockProvider{}, hub, nil, zap.NewNop())

	result, err := svc.Fetch(context.Background(), 42)
	assert.NoError(t, err)
	assert.False(t, result.Cached)

	body, err := result.Body()
	assert.NoError(t, err)
	posts, ok := body["posts"].([]any)
	assert.True(t, ok)
	assert.Len(t, posts, 3)

	if assert.Len(t, hub.topics, 1) {
		assert.Equal(t, "social_media_updated", hub.topics[0])
		payload, ok := hub.events[0].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, int64(42), payload["disaster_id"])
	}
}

func TestFetchCachedDoesNotBroadcast(t *testing.T) {
	orch, mock := setupOrchestrator(t)

	mock.ExpectQuery(`SELECT \* FROM "cache"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at"}).
			AddRow("social:42", `{"posts":[]}`, time.Now().Add(time.Hour)))

	hub := &captureHub{}
	svc := social.NewService(orch, social.MockProvider{}, hub, nil, zap.NewNop())

	result, err := svc.Fetch(context.Background(), 42)
	assert.NoError(t, err)
	assert.True(t, result.Cached)
	assert.Empty(t, hub.topics, "a hit means nothing changed, so nothing is published")
}
