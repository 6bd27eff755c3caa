package users

import (
	"context"
)

// UserStore defines the interface for user record storage.
// GetUser returns ErrUserNotFound when no record exists for the key.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	PutUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]*User, error)
}

// IDGenerator produces identifiers for newly created users
type IDGenerator interface {
	NewID() string
}

// UserService defines the request handlers for the user lifecycle
type UserService interface {
	CreateUser(ctx context.Context, req *Request) (*Response, error)
	GetUser(ctx context.Context, req *Request) (*Response, error)
	UpdateUser(ctx context.Context, req *Request) (*Response, error)
	DeleteUser(ctx context.Context, req *Request) (*Response, error)
	ListUsers(ctx context.Context, req *Request) (*Response, error)
}
