package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-profile-service/internal/domain/user"
	"user-profile-service/pkg/security"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// The unique index on email is a backstop for the uniqueness pre-check;
// a concurrent write that slips past the pre-check fails here instead of
// inserting a duplicate row.
type UserSchema struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Age       *int      `gorm:""`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Age:       m.Age,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create inserts a new user row. The caller supplies the generated ID and
// both timestamps.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return nil
}

// Update writes the full user row and reports how many rows were affected.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":       u.Name,
		"email":      u.Email,
		"age":        u.Age,
		"updated_at": u.UpdatedAt,
	})
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.String("id", u.ID))
		return 0, fmt.Errorf("failed to update user: %w", res.Error)
	}

	r.log.Info("user updated in db", zap.String("id", u.ID), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// Delete removes a user row by ID and reports how many rows were affected.
func (r *UserRepoPG) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.String("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", res.Error)
	}

	r.log.Info("user deleted in db", zap.String("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// GetByID retrieves a user by their unique ID. Returns (nil, nil) when no
// row matches; the operation layer decides whether that is an error.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomain(&model), nil
}

// GetByEmail retrieves a user by their email address. Returns (nil, nil)
// when no row matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toDomain(&model), nil
}

// List retrieves a page of users plus the total row count for the same
// filter. An offset beyond the last row yields an empty slice, not an error.
func (r *UserRepoPG) List(ctx context.Context, search string, offset, limit int64) ([]user.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&UserSchema{})
	if search != "" {
		pattern := "%" + security.EscapeLike(search) + "%"
		// Explicit ESCAPE: sqlite has no default escape character, so
		// the backslash escapes from EscapeLike need it spelled out
		tx = tx.Where(`name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err), zap.String("search", search))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserSchema
	if err := tx.Order("created_at ASC, id ASC").Offset(int(offset)).Limit(int(limit)).Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.String("search", search))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, total, nil
}
