package persistence

// SQL types rendered by the DDL builder
const (
	SQLTypeVarchar     = "VARCHAR"
	SQLTypeVarchar36   = "VARCHAR(36)"
	SQLTypeInt         = "INT"
	SQLTypeFloat       = "FLOAT"
	SQLTypeDecimal18_6 = "DECIMAL(18,6)"
	SQLTypeBoolean     = "BOOLEAN"
	SQLTypeDate        = "DATE"
	SQLTypeDateTime    = "DATETIME"
	SQLTypeTimestamp   = "TIMESTAMP"
	SQLTypeText        = "TEXT"
	SQLTypeJSON        = "JSON"
)

// Table options shared by every table this service creates
const TableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"

// MySQL server error numbers the repositories react to
const (
	mysqlErrDuplicateEntry   uint16 = 1062
	mysqlErrLockWaitTimeout  uint16 = 1205
	mysqlErrDeadlock         uint16 = 1213
	mysqlErrNoReferencedRow2 uint16 = 1452
)
