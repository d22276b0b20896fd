package resources

import (
	"context"
	"errors"
	"fmt"

	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"
	"disasterhub/feature/disasters"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a resource to delete does not exist.
var ErrNotFound = errors.New("resource not found")

// NearbyRadiusMeters is the fixed search radius of the proximity query.
const NearbyRadiusMeters = 10000

// Input carries the client-supplied fields of a resource.
type Input struct {
	DisasterID   int64    `json:"disaster_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Service handles resource queries and mutations.
type Service struct {
	db      *gorm.DB
	hub     broadcast.Broadcaster
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new resources service.
func NewService(db *gorm.DB, hub broadcast.Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{db: db, hub: hub, metrics: m, logger: logger}
}

// Nearby runs the get_nearby_resources stored procedure: resources within
// the fixed radius of the center point, filtered to the disaster.
func (s *Service) Nearby(ctx context.Context, disasterID int64, lat, lon float64) ([]ResourceWithCoords, error) {
	point := fmt.Sprintf("POINT(%g %g)", lon, lat)

	var rows []ResourceWithCoords
	err := s.db.WithContext(ctx).
		Raw("SELECT * FROM get_nearby_resources(?, ?, ?)", point, NearbyRadiusMeters, disasterID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("nearby resources for disaster %d: %w", disasterID, err)
	}
	return rows, nil
}

// ListAll returns every resource with its point parsed to lat/lon.
func (s *Service) ListAll(ctx context.Context) ([]ResourceWithCoords, error) {
	var rows []ResourceWithCoords
	err := s.db.WithContext(ctx).
		Raw(`SELECT id, disaster_id, title, description, type, location_name,
			ST_Y(coordinates::geometry) AS lat, ST_X(coordinates::geometry) AS lon,
			created_at FROM resources`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return rows, nil
}

// Create persists a resource with a point location and broadcasts it.
func (s *Service) Create(ctx context.Context, in Input) (*Resource, error) {
	resource := Resource{
		DisasterID:   in.DisasterID,
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		LocationName: in.LocationName,
		Coordinates:  disasters.WKTPoint(*in.Latitude, *in.Longitude),
	}

	if err := s.db.WithContext(ctx).Create(&resource).Error; err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	s.hub.Publish(broadcast.TopicResourceUpdated, resource)
	s.metrics.EventPublished(broadcast.TopicResourceUpdated)
	return &resource, nil
}

// Delete removes the resource and broadcasts a tombstone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Resource{})
	if res.Error != nil {
		return fmt.Errorf("delete resource %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.hub.Publish(broadcast.TopicResourceUpdated, map[string]any{"deleted": true, "id": id})
	s.metrics.EventPublished(broadcast.TopicResourceUpdated)
	return nil
}
