package user

import (
	"context"

	"user-profile-service/internal/schema"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in schema.CreateUser) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, in schema.UpdateUser) (*User, error)
	DeleteUser(ctx context.Context, id string) (*DeleteUserResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
}
