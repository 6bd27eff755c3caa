package users

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of UserStore.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]*User
}

var _ UserStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]*User),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.store[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	copy := *user
	return &copy, nil
}

func (s *MemoryStore) PutUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *user
	s.store[user.UserID] = &copy
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.store, userID)
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*User, 0, len(s.store))
	for _, user := range s.store {
		copy := *user
		result = append(result, &copy)
	}
	return result, nil
}

// Name implements health.Checker
func (s *MemoryStore) Name() string {
	return "memory"
}

// IsCritical implements health.Checker
func (s *MemoryStore) IsCritical() bool {
	return true
}

// HealthCheck implements health.Checker
func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return nil
}
