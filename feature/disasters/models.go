package disasters

import (
	"fmt"
	"time"
)

// AuditEntry records one mutation of a disaster.
type AuditEntry struct {
	Action    string    `json:"action"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Disaster is a row in the disasters table. Location is a PostGIS geography
// point written as extended WKT.
type Disaster struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	Title        string       `json:"title"`
	LocationName string       `json:"location_name"`
	Location     string       `json:"-"`
	Description  string       `json:"description"`
	Tags         []string     `gorm:"type:jsonb;serializer:json" json:"tags"`
	OwnerID      int64        `json:"owner_id"`
	AuditTrail   []AuditEntry `gorm:"type:jsonb;serializer:json" json:"audit_trail"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TableName maps the model to the disasters table.
func (Disaster) TableName() string { return "disasters" }

// DisasterWithCoords is a row of the disasters_with_coords read view, which
// exposes the geography point as parsed lat/lon.
type DisasterWithCoords struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	LocationName string    `json:"location_name"`
	Description  string    `json:"description"`
	Tags         []string  `gorm:"type:jsonb;serializer:json" json:"tags"`
	OwnerID      int64     `json:"owner_id"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps the model to the read view.
func (DisasterWithCoords) TableName() string { return "disasters_with_coords" }

// WKTPoint renders coordinates as the extended well-known-text form the
// store's geography columns accept. Longitude comes first.
func WKTPoint(lat, lon float64) string {
	return fmt.Sprintf("SRID=4326;POINT(%g %g)", lon, lat)
}
