package schema

import (
	"fmt"
	"regexp"
	"strings"

	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// MySQL identifier length limit
const MaxIdentifierLength = 64

// MaxVarcharLength is the largest length accepted for a varchar column
const MaxVarcharLength = 65535

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tableNamePattern  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	typeKeyPattern    = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// ValidateTableName checks an explicit table name
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return appErrors.NewValidationError("tableName", fmt.Sprintf("table name '%s' must be snake_case (lowercase, alphanumeric, underscores)", name))
	}
	if len(name) > MaxIdentifierLength {
		return appErrors.NewValidationError("tableName", fmt.Sprintf("table name '%s' exceeds %d characters", name, MaxIdentifierLength))
	}
	return nil
}

// ValidateTypeKey checks that a type key folds into a usable table name
func ValidateTypeKey(kind SpecKind, typeKey string) error {
	field := kind.TypeField()
	folded := foldTypeKey(typeKey)
	if folded == "" {
		return appErrors.NewValidationError(field, "is required")
	}
	if !typeKeyPattern.MatchString(folded) {
		return appErrors.NewValidationError(field, fmt.Sprintf("'%s' may only contain letters, digits and underscores", typeKey))
	}
	if tableName := kind.TableNameFor(typeKey); len(tableName) > MaxIdentifierLength {
		return appErrors.NewValidationError(field, fmt.Sprintf("derived table name '%s' exceeds %d characters", tableName, MaxIdentifierLength))
	}
	return nil
}

// ValidateColumns checks every column definition and the list as a whole.
// Nothing reaches the DDL builder without passing here.
func ValidateColumns(columns []ColumnDefinition) error {
	if len(columns) == 0 {
		return appErrors.NewValidationError("columns", "at least one column is required")
	}

	reserved := make(map[string]bool)
	for _, name := range constants.FixedSpecColumns() {
		reserved[name] = true
	}

	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		if err := ValidateColumn(col); err != nil {
			return err
		}
		key := strings.ToLower(col.Name)
		if reserved[key] {
			return appErrors.NewValidationError(fmt.Sprintf("columns[%d].name", i), fmt.Sprintf("'%s' is a reserved column", col.Name))
		}
		if seen[key] {
			return appErrors.NewValidationError(fmt.Sprintf("columns[%d].name", i), fmt.Sprintf("duplicate column '%s'", col.Name))
		}
		seen[key] = true
	}
	return nil
}

// ValidateColumn checks a single column definition
func ValidateColumn(col ColumnDefinition) error {
	if !identifierPattern.MatchString(col.Name) {
		return appErrors.NewValidationError("name", fmt.Sprintf("column name '%s' must start with a letter or underscore and contain only letters, digits and underscores", col.Name))
	}
	if len(col.Name) > MaxIdentifierLength {
		return appErrors.NewValidationError("name", fmt.Sprintf("column name '%s' exceeds %d characters", col.Name, MaxIdentifierLength))
	}
	if !col.Type.IsValid() {
		return appErrors.NewValidationError("type", fmt.Sprintf("unsupported type '%s' for column '%s'", col.Type, col.Name))
	}
	if col.Type == ColumnTypeVarchar && col.Length != nil {
		if *col.Length < 1 || *col.Length > MaxVarcharLength {
			return appErrors.NewValidationError("length", fmt.Sprintf("length for column '%s' must be between 1 and %d", col.Name, MaxVarcharLength))
		}
	}
	// MySQL rejects literal defaults on TEXT columns
	if col.Type == ColumnTypeText && col.DefaultValue != nil {
		return appErrors.NewValidationError("defaultValue", fmt.Sprintf("text column '%s' cannot have a default value", col.Name))
	}
	return nil
}
