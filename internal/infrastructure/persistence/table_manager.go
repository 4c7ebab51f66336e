package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/internal/infrastructure/lock"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

const (
	queryTableExists = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	queryDescribe    = "SELECT column_name, column_type, is_nullable, column_default FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"

	ddlMaxRetries = 3
)

// TableManager materializes table definitions as physical tables.
// Every create replaces an existing table of the same name along with its rows.
type TableManager struct {
	db       *sql.DB
	tx       *TransactionManager
	verifier *DDLVerifier
	locker   lock.Locker
}

var _ ports.TableManager = (*TableManager)(nil)

// NewTableManager creates a TableManager. A nil locker falls back to an in-process lock.
func NewTableManager(db *sql.DB, locker lock.Locker) *TableManager {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &TableManager{
		db:       db,
		tx:       NewTransactionManager(db),
		verifier: NewDDLVerifier(),
		locker:   locker,
	}
}

// Locker is the lock used to serialize DDL per table
func (m *TableManager) Locker() lock.Locker {
	return m.locker
}

// CreateTable drops any existing table with the resolved name and creates it
// from the definition. Check, drop and create run in one transaction on one
// connection. MySQL commits DDL implicitly, so rollback only covers statements
// that had not yet executed.
func (m *TableManager) CreateTable(ctx context.Context, req schema.TableRequest) (schema.TableDefinition, error) {
	def, err := req.Resolve()
	if err != nil {
		return def, err
	}

	createDDL, err := BuildCreateTableDDL(def)
	if err != nil {
		return def, err
	}
	if err := m.verifier.VerifyCreate(createDDL, def); err != nil {
		return def, err
	}
	dropDDL, err := BuildDropTableDDL(def.TableName)
	if err != nil {
		return def, err
	}
	if err := m.verifier.VerifyDrop(dropDDL, def.TableName); err != nil {
		return def, err
	}

	unlock, err := m.locker.Lock(ctx, def.TableName)
	if err != nil {
		return def, fmt.Errorf("failed to lock table %s: %w", def.TableName, err)
	}
	defer unlock()

	err = m.tx.WithRetry(ctx, func(tx *sql.Tx) error {
		exists, err := tableExists(ctx, tx, def.TableName)
		if err != nil {
			return err
		}
		if exists {
			log.Printf("🔥 Dropping existing table: %s", def.TableName)
			if _, err := tx.ExecContext(ctx, dropDDL); err != nil {
				return err
			}
		}

		log.Printf("📐 Creating table: %s", def.TableName)
		log.Printf("📝 Executing DDL for %s: \n%s", def.TableName, createDDL)
		_, err = tx.ExecContext(ctx, createDDL)
		return err
	}, ddlMaxRetries)
	if err != nil {
		log.Printf("❌ Failed to create table %s: %v", def.TableName, err)
		return def, appErrors.NewDDLError("create", def.TableName, err)
	}

	log.Printf("✅ DDL executed successfully for %s", def.TableName)
	return def, nil
}

// CheckTableExists reads the catalog for tableName in the current schema
func (m *TableManager) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if err := schema.ValidateTableName(tableName); err != nil {
		return false, err
	}
	exists, err := tableExists(ctx, m.db, tableName)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", tableName, err)
	}
	return exists, nil
}

// DropTable drops tableName if it exists. Dropping a missing table succeeds.
func (m *TableManager) DropTable(ctx context.Context, tableName string) error {
	dropDDL, err := BuildDropTableDDL(tableName)
	if err != nil {
		return err
	}
	if err := m.verifier.VerifyDrop(dropDDL, tableName); err != nil {
		return err
	}

	unlock, err := m.locker.Lock(ctx, tableName)
	if err != nil {
		return fmt.Errorf("failed to lock table %s: %w", tableName, err)
	}
	defer unlock()

	log.Printf("🔥 Dropping table: %s", tableName)
	err = m.tx.WithConnTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, dropDDL)
		return err
	})
	if err != nil {
		log.Printf("❌ Failed to drop table %s: %v", tableName, err)
		return appErrors.NewDDLError("drop", tableName, err)
	}
	return nil
}

// DescribeTable lists the physical columns of tableName in ordinal order.
// A missing table yields an empty slice.
func (m *TableManager) DescribeTable(ctx context.Context, tableName string) ([]ports.PhysicalColumn, error) {
	if err := schema.ValidateTableName(tableName); err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, queryDescribe, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}
	defer func() { _ = rows.Close() }()

	columns := make([]ports.PhysicalColumn, 0)
	for rows.Next() {
		var col ports.PhysicalColumn
		var nullable string
		var def sql.NullString
		if err := rows.Scan(&col.Name, &col.ColumnType, &nullable, &def); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", tableName, err)
		}
		col.Nullable = nullable == "YES"
		if def.Valid {
			col.Default = &def.String
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// CountRows returns the number of rows stored in tableName
func (m *TableManager) CountRows(ctx context.Context, tableName string) (int64, error) {
	if err := schema.ValidateTableName(tableName); err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", tableName)
	if err := m.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", tableName, err)
	}
	return count, nil
}

func tableExists(ctx context.Context, exec Executor, tableName string) (bool, error) {
	var count int
	if err := exec.QueryRowContext(ctx, queryTableExists, tableName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
