package social

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"disasterhub/core/aggregate"
	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"

	"go.uber.org/zap"
)

// Post is one social media post tied to a disaster.
type Post struct {
	User       string    `json:"user"`
	Post       string    `json:"post"`
	Timestamp  time.Time `json:"timestamp"`
	DisasterID int64     `json:"disaster_id"`
}

// PostsProvider supplies social media posts for a disaster.
type PostsProvider interface {
	Posts(ctx context.Context, disasterID int64) ([]Post, error)
}

// MockProvider generates synthetic posts until a real social media firehose
// is available.
type MockProvider struct{}

// Posts returns three synthetic posts tagged with the disaster id.
func (MockProvider) Posts(_ context.Context, disasterID int64) ([]Post, error) {
	now := time.Now().UTC()
	samples := []Post{
		{User: "citizen1", Post: "#floodrelief Need food in Brooklyn", Timestamp: now},
		{User: "localnews", Post: "Emergency shelter set up in East Brooklyn #flood", Timestamp: now},
		{User: "volunteerX", Post: "Offering blankets near Williamsburg #disasterHelp", Timestamp: now},
	}
	for i := range samples {
		samples[i].DisasterID = disasterID
	}
	return samples, nil
}

// Service aggregates social media posts per disaster, cached, and notifies
// subscribers when fresh posts arrive.
type Service struct {
	orchestrator *aggregate.Orchestrator
	provider     PostsProvider
	hub          broadcast.Broadcaster
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewService creates a new social media service.
func NewService(orchestrator *aggregate.Orchestrator, provider PostsProvider, hub broadcast.Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{orchestrator: orchestrator, provider: provider, hub: hub, metrics: m, logger: logger}
}

// Fetch runs the cached aggregation for one disaster. The
// social_media_updated event fires only when fresh posts were fetched and
// written through; a cache hit means nothing changed, so nothing is
// published.
func (s *Service) Fetch(ctx context.Context, disasterID int64) (aggregate.Result, error) {
	var fetched []Post

	return s.orchestrator.Do(ctx, aggregate.Operation{
		Endpoint: "social-media",
		Key:      fmt.Sprintf("social:%d", disasterID),
		Fetch: func(ctx context.Context) (any, error) {
			posts, err := s.provider.Posts(ctx, disasterID)
			if err != nil {
				return nil, err
			}
			fetched = posts
			return map[string]any{"posts": posts}, nil
		},
		OnFresh: func(json.RawMessage) {
			s.hub.Publish(broadcast.TopicSocialMediaUpdated, map[string]any{
				"disaster_id": disasterID,
				"posts":       fetched,
			})
			s.metrics.EventPublished(broadcast.TopicSocialMediaUpdated)
		},
	})
}
