package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var journalSchema embed.FS

// Migrate creates or upgrades the runs and call_attempts tables of the journal.
func Migrate(db *sql.DB) error {
	if err := sqlmigrator.New(db, darwin.SqliteDialect{}).Migrate(journalSchema, "sql"); err != nil {
		return fmt.Errorf("failed to migrate the run journal: %w", err)
	}
	return nil
}
