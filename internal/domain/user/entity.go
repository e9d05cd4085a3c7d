package user

import "time"

// User is the login identity linked 1:1 to an employee record.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
