package constants

import "strings"

// Core table names. Generated specification tables are not listed here; their
// names are derived from the type key at runtime.
const (
	TableSite               = "site"
	TableEquipment          = "equipment"
	TableSpecification      = "specifications"
	TableSiteSpecification  = "site_specifications"
	TableNotification       = "notifications"
	TableUser               = "users"
	InformationSchemaTables = "information_schema.tables"
	InformationSchemaCols   = "information_schema.columns"
)

// Generated table prefixes
const (
	SpecTablePrefix     = "spec_"
	SiteSpecTablePrefix = "site_spec_"
)

// IsGeneratedTable reports whether a table name belongs to a runtime specification table.
func IsGeneratedTable(tableName string) bool {
	return strings.HasPrefix(tableName, SpecTablePrefix) || strings.HasPrefix(tableName, SiteSpecTablePrefix)
}
