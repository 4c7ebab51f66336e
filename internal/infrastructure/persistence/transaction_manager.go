package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
)

// TransactionManager handles database transactions with retry logic for deadlocks
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a new TransactionManager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithConnTransaction executes fn within a transaction on a dedicated connection
// which is returned to the pool on every path. The transaction is rolled back if
// fn returns an error or panics and committed otherwise. DDL runs here so the
// existence check, drop and create of one request share a session.
func (tm *TransactionManager) WithConnTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := tm.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	return runTx(tx, fn)
}

// WithRetry runs WithConnTransaction and retries on deadlock or lock wait timeout
// with exponential backoff. Other errors are returned immediately.
func (tm *TransactionManager) WithRetry(ctx context.Context, fn func(tx *sql.Tx) error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := tm.WithConnTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isDeadlock(err) {
			return err
		}

		if attempt < maxRetries-1 {
			backoff := time.Millisecond * time.Duration(100*(1<<uint(attempt)))
			log.Printf("⚠️ Lock conflict, retrying in %s (attempt %d/%d): %v", backoff, attempt+1, maxRetries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("transaction failed after %d retries: %w", maxRetries, lastErr)
}

func runTx(tx *sql.Tx, fn func(tx *sql.Tx) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("transaction failed: %w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isDeadlock reports MySQL 1213 (deadlock) and 1205 (lock wait timeout)
func isDeadlock(err error) bool {
	return hasMySQLCode(err, mysqlErrDeadlock) || hasMySQLCode(err, mysqlErrLockWaitTimeout)
}

// isDuplicateEntry reports a unique key violation (MySQL 1062)
func isDuplicateEntry(err error) bool {
	return hasMySQLCode(err, mysqlErrDuplicateEntry)
}

// isMissingParent reports a foreign key violation on insert/update (MySQL 1452)
func isMissingParent(err error) bool {
	return hasMySQLCode(err, mysqlErrNoReferencedRow2)
}

func hasMySQLCode(err error, code uint16) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == code
	}
	return false
}
