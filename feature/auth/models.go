package auth

import "time"

// ValidRoles are the roles a user may register with.
var ValidRoles = []string{"admin", "responder", "citizen"}

// User is a row in the users table.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps the model to the users table.
func (User) TableName() string { return "users" }
