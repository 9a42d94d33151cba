package users

import "time"

// User represents an application user account.
type User struct {
	ID          int64
	Email       string
	Username    string
	Name        string
	Role        string
	Department  string
	Phone       string
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
