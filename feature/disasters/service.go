package disasters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"
	"disasterhub/provider/nominatim"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service errors surfaced to the handler as client errors.
var (
	ErrNotFound = errors.New("disaster not found")
	ErrGeocode  = errors.New("could not geocode location")
)

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (nominatim.Result, error)
}

// Input carries the client-supplied fields of a disaster.
type Input struct {
	Title        string   `json:"title"`
	LocationName string   `json:"location_name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
}

// Service handles disaster CRUD with geocoded locations and change
// broadcasts.
type Service struct {
	db       *gorm.DB
	geocoder Geocoder
	hub      broadcast.Broadcaster
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new disasters service.
func NewService(db *gorm.DB, geocoder Geocoder, hub broadcast.Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{db: db, geocoder: geocoder, hub: hub, metrics: m, logger: logger}
}

// Get returns one disaster by id.
func (s *Service) Get(ctx context.Context, id int64) (*Disaster, error) {
	var disaster Disaster
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&disaster).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch disaster %d: %w", id, err)
	}
	return &disaster, nil
}

// List returns all disasters with their coordinates parsed from the
// geography column via the read view.
func (s *Service) List(ctx context.Context) ([]DisasterWithCoords, error) {
	var rows []DisasterWithCoords
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list disasters: %w", err)
	}
	return rows, nil
}

// Create geocodes the location name, persists the disaster with a point
// location and an initial audit entry, and broadcasts the new row.
// A location the geocoder cannot resolve is ErrGeocode: the create depends
// on coordinates exclusively, so absence fails loudly here.
func (s *Service) Create(ctx context.Context, in Input, ownerID int64) (*Disaster, error) {
	point, err := s.locatePoint(ctx, in.LocationName)
	if err != nil {
		return nil, err
	}

	disaster := Disaster{
		Title:        in.Title,
		LocationName: in.LocationName,
		Location:     point,
		Description:  in.Description,
		Tags:         in.Tags,
		OwnerID:      ownerID,
		AuditTrail: []AuditEntry{
			{Action: "create", UserID: ownerID, Timestamp: time.Now().UTC()},
		},
	}

	if err := s.db.WithContext(ctx).Create(&disaster).Error; err != nil {
		return nil, fmt.Errorf("insert disaster: %w", err)
	}

	s.publish(disaster)
	return &disaster, nil
}

// Update geocodes the new location name and rewrites the row, replacing the
// audit trail with an update entry, then broadcasts the changed row.
func (s *Service) Update(ctx context.Context, id int64, in Input, userID int64) (*Disaster, error) {
	point, err := s.locatePoint(ctx, in.LocationName)
	if err != nil {
		return nil, err
	}

	audit := []AuditEntry{{Action: "update", UserID: userID, Timestamp: time.Now().UTC()}}

	res := s.db.WithContext(ctx).Model(&Disaster{}).Where("id = ?", id).
		Updates(map[string]any{
			"title":         in.Title,
			"location_name": in.LocationName,
			"location":      point,
			"description":   in.Description,
			"tags":          in.Tags,
			"audit_trail":   audit,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update disaster %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(*updated)
	return updated, nil
}

// Delete removes the disaster and broadcasts a tombstone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Disaster{})
	if res.Error != nil {
		return fmt.Errorf("delete disaster %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.hub.Publish(broadcast.TopicDisasterUpdated, tombstone(id))
	s.metrics.EventPublished(broadcast.TopicDisasterUpdated)
	return nil
}

func (s *Service) locatePoint(ctx context.Context, locationName string) (string, error) {
	result, err := s.geocoder.Geocode(ctx, locationName)
	if err != nil {
		s.logger.Warn("Geocoding failed", zap.String("location", locationName), zap.Error(err))
		return "", ErrGeocode
	}
	if result.Lat == nil || result.Lon == nil {
		return "", ErrGeocode
	}
	return WKTPoint(*result.Lat, *result.Lon), nil
}

func (s *Service) publish(d Disaster) {
	s.hub.Publish(broadcast.TopicDisasterUpdated, d)
	s.metrics.EventPublished(broadcast.TopicDisasterUpdated)
}

func tombstone(id int64) map[string]any {
	return map[string]any{"deleted": true, "id": id}
}
