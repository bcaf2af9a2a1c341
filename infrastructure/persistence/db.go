// Package persistence provides database storage implementations.
package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/markerrange/internal/database"
)

// AutoMigrate creates or updates the tables used by the stores.
func AutoMigrate(db database.Database) error {
	if err := db.Session(context.Background()).AutoMigrate(&RunModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
