package users

import (
	"github.com/uptrace/bun"
)

// User represents a stored user record
type User struct {
	UserID        string `json:"userID"`
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial"`
	LastName      string `json:"lastName"`
	Gender        string `json:"gender"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
}

// UserInput holds the validated fields of a create or update body
type UserInput struct {
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial"`
	LastName      string `json:"lastName"`
	Gender        string `json:"gender"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
}

// ToUser merges the validated fields with the given identifier
func (in *UserInput) ToUser(userID string) *User {
	return &User{
		UserID:        userID,
		FirstName:     in.FirstName,
		MiddleInitial: in.MiddleInitial,
		LastName:      in.LastName,
		Gender:        in.Gender,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
	}
}

// UserSchema represents the users table schema
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID        string `bun:"user_id,pk"`
	FirstName     string `bun:"first_name,notnull"`
	MiddleInitial string `bun:"middle_initial,notnull"`
	LastName      string `bun:"last_name,notnull"`
	Gender        string `bun:"gender,notnull"`
	Email         string `bun:"email,notnull"`
	PhoneNumber   string `bun:"phone_number,notnull"`
}

// Helper conversion functions
func UserSchemaToUser(schema UserSchema) *User {
	return &User{
		UserID:        schema.UserID,
		FirstName:     schema.FirstName,
		MiddleInitial: schema.MiddleInitial,
		LastName:      schema.LastName,
		Gender:        schema.Gender,
		Email:         schema.Email,
		PhoneNumber:   schema.PhoneNumber,
	}
}

func UserToUserSchema(user *User) UserSchema {
	return UserSchema{
		UserID:        user.UserID,
		FirstName:     user.FirstName,
		MiddleInitial: user.MiddleInitial,
		LastName:      user.LastName,
		Gender:        user.Gender,
		Email:         user.Email,
		PhoneNumber:   user.PhoneNumber,
	}
}
