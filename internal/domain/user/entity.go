package user

import "time"

// User represents a profile record in the system.
type User struct {
	ID        string    // ID is the service-generated v4 UUID, immutable after creation
	Name      string    // Name is the full name of the user
	Email     string    // Email is the unique, lower-cased email address of the user
	Age       *int      // Age is optional; nil when the client never supplied one
	CreatedAt time.Time // CreatedAt is set once at creation
	UpdatedAt time.Time // UpdatedAt is bumped on every successful mutation
}
