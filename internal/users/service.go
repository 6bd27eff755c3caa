package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// PathParamID is the path parameter carrying the user identifier
const PathParamID = "id"

// Service implements the UserService interface
type Service struct {
	store UserStore
	ids   IDGenerator
}

// NewService creates a new user service
func NewService(store UserStore, ids IDGenerator) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Service{
		store: store,
		ids:   ids,
	}
}

// CreateUser validates the body, assigns a fresh identifier and stores the record
func (s *Service) CreateUser(ctx context.Context, req *Request) (*Response, error) {
	resp, err := s.createUser(ctx, req)
	if err != nil {
		return HandleError(err)
	}
	return resp, nil
}

func (s *Service) createUser(ctx context.Context, req *Request) (*Response, error) {
	input, err := parseUserInput(req.Body)
	if err != nil {
		return nil, err
	}

	user := input.ToUser(s.ids.NewID())
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return jsonResponse(http.StatusCreated, user)
}

// GetUser returns the record named by the path identifier
func (s *Service) GetUser(ctx context.Context, req *Request) (*Response, error) {
	user, err := s.fetchUserByID(ctx, req.PathParameter(PathParamID))
	if err != nil {
		return HandleError(err)
	}
	return jsonResponse(http.StatusOK, user)
}

// UpdateUser replaces every field of an existing record, keeping the path identifier
func (s *Service) UpdateUser(ctx context.Context, req *Request) (*Response, error) {
	resp, err := s.updateUser(ctx, req)
	if err != nil {
		return HandleError(err)
	}
	return resp, nil
}

func (s *Service) updateUser(ctx context.Context, req *Request) (*Response, error) {
	id := req.PathParameter(PathParamID)

	// Only existence matters here, the stored fields are replaced wholesale.
	if _, err := s.fetchUserByID(ctx, id); err != nil {
		return nil, err
	}

	input, err := parseUserInput(req.Body)
	if err != nil {
		return nil, err
	}

	user := input.ToUser(id)
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return jsonResponse(http.StatusOK, user)
}

// DeleteUser removes an existing record
func (s *Service) DeleteUser(ctx context.Context, req *Request) (*Response, error) {
	id := req.PathParameter(PathParamID)

	if _, err := s.fetchUserByID(ctx, id); err != nil {
		return HandleError(err)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return HandleError(fmt.Errorf("failed to delete user: %w", err))
	}

	return &Response{StatusCode: http.StatusNoContent}, nil
}

// ListUsers returns every stored record in store order
func (s *Service) ListUsers(ctx context.Context, req *Request) (*Response, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if users == nil {
		users = []*User{}
	}
	return jsonResponse(http.StatusOK, users)
}

// fetchUserByID looks up a record, turning a missing key into a 404 failure
func (s *Service) fetchUserByID(ctx context.Context, id string) (*User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, NewNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// parseUserInput decodes a raw body and validates it against the user schema
func parseUserInput(body string) (*UserInput, error) {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, NewMalformedInputError(err)
	}
	return ValidateUserInput(decoded)
}
