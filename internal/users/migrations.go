package users

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates the users table if it does not exist yet
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*UserSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}
