package resources

import "time"

// Resource is a row in the resources table. Coordinates is a PostGIS
// geography point written as extended WKT.
type Resource struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	DisasterID   int64     `json:"disaster_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	LocationName string    `json:"location_name"`
	Coordinates  string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps the model to the resources table.
func (Resource) TableName() string { return "resources" }

// ResourceWithCoords is a resource row with its point parsed to lat/lon,
// as returned by the list and proximity queries.
type ResourceWithCoords struct {
	ID           int64     `json:"id"`
	DisasterID   int64     `json:"disaster_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	LocationName string    `json:"location_name"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	CreatedAt    time.Time `json:"created_at"`
}
