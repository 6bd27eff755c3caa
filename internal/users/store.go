package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// BunStore implements the UserStore interface on top of a bun database.
// It works with both the PostgreSQL and SQLite dialects.
type BunStore struct {
	db   *bun.DB
	name string
}

var _ UserStore = (*BunStore)(nil)

// NewBunStore creates a new user store instance; name identifies the backend in health reports
func NewBunStore(db *bun.DB, name string) *BunStore {
	return &BunStore{
		db:   db,
		name: name,
	}
}

// GetUser retrieves a user by ID
func (s *BunStore) GetUser(ctx context.Context, userID string) (*User, error) {
	var userSchema UserSchema
	err := s.db.NewSelect().
		Model(&userSchema).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return UserSchemaToUser(userSchema), nil
}

// PutUser inserts the user or replaces every column of an existing row
func (s *BunStore) PutUser(ctx context.Context, user *User) error {
	userSchema := UserToUserSchema(user)

	_, err := s.db.NewInsert().
		Model(&userSchema).
		On("CONFLICT (user_id) DO UPDATE").
		Set("first_name = EXCLUDED.first_name").
		Set("middle_initial = EXCLUDED.middle_initial").
		Set("last_name = EXCLUDED.last_name").
		Set("gender = EXCLUDED.gender").
		Set("email = EXCLUDED.email").
		Set("phone_number = EXCLUDED.phone_number").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to put user: %w", err)
	}

	return nil
}

// DeleteUser removes a user by ID
func (s *BunStore) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ListUsers scans the whole users table
func (s *BunStore) ListUsers(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(schemas))
	for _, schema := range schemas {
		users = append(users, UserSchemaToUser(schema))
	}
	return users, nil
}

// Name implements health.Checker
func (s *BunStore) Name() string {
	return s.name
}

// IsCritical implements health.Checker
func (s *BunStore) IsCritical() bool {
	return true
}

// HealthCheck implements health.Checker
func (s *BunStore) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *BunStore) Close() error {
	return s.db.Close()
}
