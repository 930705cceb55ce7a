package user

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-profile-service/internal/domain/user"
	"user-profile-service/internal/schema"
	"user-profile-service/pkg/apperrors"
	"user-profile-service/pkg/security"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (plain DB, cached decorator) to be used interchangeably. Point lookups
// return (nil, nil) when no row matches; this layer decides whether that
// is a NotFound.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, search string, offset, limit int64) ([]domain.User, int64, error)
}

// Service implements the business logic for user management operations.
// Validation and precondition failures are raised here as taxonomy errors
// and propagate unmodified to the handler boundary; store failures are
// wrapped as internal errors. Nothing is retried.
type Service struct {
	repo   Repository
	schema *schema.Validator
	log    *zap.Logger
}

var _ Usecase = (*Service)(nil)

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, schema: schema.New(), log: log}
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. The generated id is a fresh v4 UUID and both timestamps
// are equal at creation.
func (s *Service) CreateUser(ctx context.Context, in schema.CreateUser) (*User, error) {
	if violations := s.schema.CreateUser(&in); len(violations) > 0 {
		s.log.Warn("create user validation failed", zap.Int("violations", len(violations)))
		return nil, apperrors.NewValidationError(violations...)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("email", "email already exists")
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	s.log.Info("user created", zap.String("id", u.ID))
	return toDTO(u), nil
}

// GetUser retrieves a user by ID after validating the id parameter.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if violations := s.schema.IDParam(id); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations...)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get user", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", "user not found")
	}

	return toDTO(u), nil
}

// UpdateUser applies a partial update. An update that supplies no mutable
// fields is rejected before any store access; an email change re-checks
// uniqueness against other records.
func (s *Service) UpdateUser(ctx context.Context, id string, in schema.UpdateUser) (*User, error) {
	if violations := s.schema.IDParam(id); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations...)
	}
	if violations := s.schema.UpdateUser(&in); len(violations) > 0 {
		s.log.Warn("update user validation failed", zap.String("id", id), zap.Int("violations", len(violations)))
		return nil, apperrors.NewValidationError(violations...)
	}
	if in.Empty() {
		return nil, apperrors.NewNoUpdatesError("no fields to update")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get user for update", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("user", "user not found")
	}

	if in.Email != nil && *in.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			s.log.Error("failed to check existing email", zap.String("email", *in.Email), zap.Error(err))
			return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
		}
		if other != nil && other.ID != id {
			s.log.Warn("email already exists", zap.String("email", *in.Email), zap.String("existing_id", other.ID))
			return nil, apperrors.NewConflictError("email", "email already exists")
		}
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}
	if in.Age != nil {
		existing.Age = in.Age
	}
	existing.UpdatedAt = time.Now().UTC()

	rows, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error("failed to update user", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	if rows == 0 {
		// Row vanished between the existence check and the write
		return nil, apperrors.NewNotFoundError("user", "user not found")
	}

	s.log.Info("user updated", zap.String("id", id))
	return toDTO(existing), nil
}

// DeleteUser hard-deletes a user by ID. A zero-row result maps to NotFound.
func (s *Service) DeleteUser(ctx context.Context, id string) (*DeleteUserResponse, error) {
	if violations := s.schema.IDParam(id); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations...)
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to delete user", err)
	}
	if rows == 0 {
		return nil, apperrors.NewNotFoundError("user", "user not found")
	}

	s.log.Info("user deleted", zap.String("id", id))
	return &DeleteUserResponse{ID: id}, nil
}

// ListUsers retrieves a paginated list of users with an optional search
// filter. A page beyond the last row returns an empty data array, not an
// error.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	search, err := security.ValidateSearchTerm(in.Search)
	if err != nil {
		s.log.Warn("invalid search term", zap.String("search", in.Search), zap.Error(err))
		return nil, apperrors.NewValidationError(apperrors.Violation{Field: "search", Message: err.Error()})
	}

	page, limit := in.Pagination.Page, in.Pagination.Limit
	offset := (page - 1) * limit
	if page-1 > math.MaxInt64/limit {
		// The product would overflow and turn negative, which the store
		// reads as "no offset". Saturate instead, any page this deep is
		// past the last row.
		offset = math.MaxInt64
	}
	users, total, err := s.repo.List(ctx, search, offset, limit)
	if err != nil {
		s.log.Error("failed to list users", zap.Int64("page", page), zap.Int64("limit", limit), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	dtos := make([]User, len(users))
	for i := range users {
		dtos[i] = *toDTO(&users[i])
	}

	return &ListUsersResponse{
		Users:      dtos,
		Pagination: domain.NewPagination(total, page, limit),
	}, nil
}
