package storage

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/assets"
)

// ensureSchema executes every embedded SQL file in name order.
// The files only contain "create if absent" statements and run on each start.
func ensureSchema(db *sql.DB) error {
	files, err := assets.Schema()
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	for _, file := range files {
		if _, err := db.Exec(file.SQL); err != nil {
			return fmt.Errorf("failed to exec schema file %s: %w", file.Name, err)
		}

		log.Debug().Str("file", file.Name).Msg("Database schema applied")
	}

	return nil
}
