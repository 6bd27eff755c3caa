package users

import (
	"github.com/google/uuid"
)

// UUIDGenerator generates random version 4 UUIDs
type UUIDGenerator struct{}

// NewID returns a new random UUID string
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
