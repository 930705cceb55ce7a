package user

import (
	"time"

	"user-profile-service/internal/schema"

	domain "user-profile-service/internal/domain/user"
)

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        string
	Name      string
	Email     string
	Age       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID string
}

// ListUsersRequest represents the request payload for listing users.
// Pagination is already normalized by the schema layer; Search is an
// optional free-text filter over name and email.
type ListUsersRequest struct {
	Pagination schema.Pagination
	Search     string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination *domain.Pagination
}
