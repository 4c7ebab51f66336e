package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// InitializeSchema creates the core tables if they do not exist.
// Generated specification tables are managed at runtime by the table manager.
func InitializeSchema(ctx context.Context, db *sql.DB) error {
	log.Println("🔧 Initializing core schema...")

	for _, t := range GetSystemTables() {
		if _, err := db.ExecContext(ctx, t.DDL); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
		log.Printf("   ✓ %s", t.Name)
	}

	log.Println("✅ Core schema ready")
	return nil
}
