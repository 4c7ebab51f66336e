package ports

import (
	"context"

	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
)

// PhysicalColumn is a column as reported by the database catalog
type PhysicalColumn struct {
	Name       string  `json:"name"`
	ColumnType string  `json:"columnType"`
	Nullable   bool    `json:"nullable"`
	Default    *string `json:"default,omitempty"`
}

// TableManager materializes table definitions as physical tables
type TableManager interface {
	// CreateTable replaces any table with the resolved name by a fresh one.
	CreateTable(ctx context.Context, req schema.TableRequest) (schema.TableDefinition, error)

	CheckTableExists(ctx context.Context, tableName string) (bool, error)

	// DropTable is idempotent.
	DropTable(ctx context.Context, tableName string) error

	DescribeTable(ctx context.Context, tableName string) ([]PhysicalColumn, error)

	CountRows(ctx context.Context, tableName string) (int64, error)
}
