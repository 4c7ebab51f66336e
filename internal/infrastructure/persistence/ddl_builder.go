package persistence

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// fixedColumnsDDL are the columns every generated table starts with, in order
var fixedColumnsDDL = []string{
	fmt.Sprintf("`%s` %s NOT NULL PRIMARY KEY", constants.FieldID, SQLTypeVarchar36),
	fmt.Sprintf("`%s` %s NOT NULL", constants.FieldSiteID, SQLTypeVarchar36),
	fmt.Sprintf("`%s` %s DEFAULT CURRENT_TIMESTAMP", constants.FieldCreatedAt, SQLTypeTimestamp),
	fmt.Sprintf("`%s` %s DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP", constants.FieldUpdatedAt, SQLTypeTimestamp),
}

// BuildCreateTableDDL renders the CREATE TABLE statement for a resolved definition.
// The definition is validated again here so no unchecked identifier reaches the template.
func BuildCreateTableDDL(def schema.TableDefinition) (string, error) {
	if err := schema.ValidateTableName(def.TableName); err != nil {
		return "", err
	}
	if err := schema.ValidateColumns(def.Columns); err != nil {
		return "", err
	}

	var ddl strings.Builder
	ddl.WriteString(fmt.Sprintf("CREATE TABLE `%s` (\n", def.TableName))

	for _, col := range fixedColumnsDDL {
		ddl.WriteString("  ")
		ddl.WriteString(col)
		ddl.WriteString(",\n")
	}

	for _, col := range def.Columns {
		ddl.WriteString("  ")
		ddl.WriteString(buildColumnDDL(col))
		ddl.WriteString(",\n")
	}

	ddl.WriteString("  ")
	ddl.WriteString(buildSiteForeignKeyDDL(def.TableName))
	ddl.WriteString("\n")
	ddl.WriteString(") ")
	ddl.WriteString(TableOptions)

	return ddl.String(), nil
}

// BuildDropTableDDL renders an idempotent DROP TABLE statement
func BuildDropTableDDL(tableName string) (string, error) {
	if err := schema.ValidateTableName(tableName); err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", tableName), nil
}

func buildColumnDDL(col schema.ColumnDefinition) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("`%s` %s", col.Name, sqlTypeFor(col)))

	if col.IsNullable() {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}

	if col.DefaultValue != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(quoteLiteral(*col.DefaultValue))
	}
	return b.String()
}

// sqlTypeFor maps a column type tag to its MySQL type. Length only applies to varchar.
func sqlTypeFor(col schema.ColumnDefinition) string {
	switch col.Type {
	case schema.ColumnTypeVarchar:
		return fmt.Sprintf("%s(%d)", SQLTypeVarchar, col.EffectiveLength())
	case schema.ColumnTypeInt:
		return SQLTypeInt
	case schema.ColumnTypeFloat:
		return SQLTypeFloat
	case schema.ColumnTypeDecimal:
		return SQLTypeDecimal18_6
	case schema.ColumnTypeBoolean:
		return SQLTypeBoolean
	case schema.ColumnTypeDate:
		return SQLTypeDate
	case schema.ColumnTypeDateTime:
		return SQLTypeDateTime
	default:
		return SQLTypeText
	}
}

func buildSiteForeignKeyDDL(tableName string) string {
	return fmt.Sprintf("CONSTRAINT `%s` FOREIGN KEY (`%s`) REFERENCES `%s` (`%s`) ON DELETE CASCADE",
		siteForeignKeyName(tableName), constants.FieldSiteID, constants.TableSite, constants.FieldID)
}

// siteForeignKeyName keeps the constraint name within MySQL's 64 character limit.
// Constraint names are unique per schema, so a truncated name carries a hash of
// the full table name.
func siteForeignKeyName(tableName string) string {
	name := "fk_" + tableName + "_site"
	if len(name) <= schema.MaxIdentifierLength {
		return name
	}
	suffix := fmt.Sprintf("_%08x_site", uint32(xxh3.HashString(tableName)))
	return "fk_" + tableName[:schema.MaxIdentifierLength-len("fk_")-len(suffix)] + suffix
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`)

// quoteLiteral renders s as a single-quoted SQL string literal
func quoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

// CatalogType is the column_type information_schema reports for a column
// created by BuildCreateTableDDL. BOOLEAN is stored as tinyint(1).
func CatalogType(col schema.ColumnDefinition) string {
	if col.Type == schema.ColumnTypeBoolean {
		return "tinyint(1)"
	}
	return strings.ToLower(sqlTypeFor(col))
}
