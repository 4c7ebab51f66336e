package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// ColumnType is one of the SQL type tags a specification column may use
type ColumnType string

const (
	ColumnTypeVarchar  ColumnType = "varchar"
	ColumnTypeInt      ColumnType = "int"
	ColumnTypeFloat    ColumnType = "float"
	ColumnTypeDecimal  ColumnType = "decimal"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeDateTime ColumnType = "datetime"
	ColumnTypeText     ColumnType = "text"
)

// DefaultVarcharLength applies to varchar columns declared without a length
const DefaultVarcharLength = 255

// ColumnTypes lists every supported type tag
func ColumnTypes() []ColumnType {
	return []ColumnType{
		ColumnTypeVarchar, ColumnTypeInt, ColumnTypeFloat, ColumnTypeDecimal,
		ColumnTypeBoolean, ColumnTypeDate, ColumnTypeDateTime, ColumnTypeText,
	}
}

// IsValid reports whether t is a supported type tag
func (t ColumnType) IsValid() bool {
	for _, known := range ColumnTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ColumnDefinition is a single user-defined column of a specification.
// It is stored as JSON in the specification row and drives DDL generation.
type ColumnDefinition struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	Length       *int       `json:"length,omitempty"`
	Nullable     *bool      `json:"nullable,omitempty"`
	DefaultValue *string    `json:"defaultValue,omitempty"`
}

// IsNullable returns the declared nullability, true when omitted
func (c ColumnDefinition) IsNullable() bool {
	if c.Nullable == nil {
		return true
	}
	return *c.Nullable
}

// EffectiveLength is the varchar length used in DDL; 0 for every other type
func (c ColumnDefinition) EffectiveLength() int {
	if c.Type != ColumnTypeVarchar {
		return 0
	}
	if c.Length == nil {
		return DefaultVarcharLength
	}
	return *c.Length
}

// TableDefinition is the canonical shape the table manager materializes:
// the fixed columns are implied, Columns are appended after them in order.
type TableDefinition struct {
	TableName string             `json:"tableName"`
	Columns   []ColumnDefinition `json:"columns"`
}

// SpecKind distinguishes equipment specifications from site specifications
type SpecKind string

const (
	KindEquipment SpecKind = "equipment"
	KindSite      SpecKind = "site"
)

// TablePrefix is the generated table prefix for the kind
func (k SpecKind) TablePrefix() string {
	if k == KindSite {
		return constants.SiteSpecTablePrefix
	}
	return constants.SpecTablePrefix
}

// MetadataTable is where specifications of this kind are persisted
func (k SpecKind) MetadataTable() string {
	if k == KindSite {
		return constants.TableSiteSpecification
	}
	return constants.TableSpecification
}

// TypeColumn is the metadata column holding the type key
func (k SpecKind) TypeColumn() string {
	if k == KindSite {
		return constants.FieldSpec_SiteType
	}
	return constants.FieldSpec_EquipmentType
}

// TypeField is the API field name of the type key
func (k SpecKind) TypeField() string {
	if k == KindSite {
		return "siteType"
	}
	return "equipmentType"
}

// Resource is the human readable resource name used in errors
func (k SpecKind) Resource() string {
	if k == KindSite {
		return "SiteSpecification"
	}
	return "Specification"
}

// TableNameFor derives the generated table name for a type key,
// e.g. ("ANTENNE", equipment) -> "spec_antenne".
func (k SpecKind) TableNameFor(typeKey string) string {
	return k.TablePrefix() + foldTypeKey(typeKey)
}

var lowerCaser = cases.Lower(language.Und)

func foldTypeKey(typeKey string) string {
	return lowerCaser.String(strings.TrimSpace(typeKey))
}
