package reports

import "time"

// Report is a row in the reports table.
type Report struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	DisasterID         int64     `json:"disaster_id"`
	UserID             int64     `json:"user_id"`
	Content            string    `json:"content"`
	ImageURL           string    `json:"image_url"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName maps the model to the reports table.
func (Report) TableName() string { return "reports" }

// DefaultStatus is assigned when a report arrives without one.
const DefaultStatus = "pending"
