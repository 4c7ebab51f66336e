package schema

// TableRequest is the input to the table manager. A request either names its
// table directly or derives it from a specification type key; it is resolved
// once into a TableDefinition before any DDL is built.
type TableRequest struct {
	kind      requestKind
	tableName string
	specKind  SpecKind
	typeKey   string
	columns   []ColumnDefinition
}

type requestKind int

const (
	requestRaw requestKind = iota
	requestSpec
)

// RawTable requests a table with an explicit name
func RawTable(tableName string, columns []ColumnDefinition) TableRequest {
	return TableRequest{kind: requestRaw, tableName: tableName, columns: columns}
}

// ForEquipmentType requests the spec_<type> table for an equipment type
func ForEquipmentType(equipmentType string, columns []ColumnDefinition) TableRequest {
	return ForSpec(KindEquipment, equipmentType, columns)
}

// ForSiteType requests the site_spec_<type> table for a site type
func ForSiteType(siteType string, columns []ColumnDefinition) TableRequest {
	return ForSpec(KindSite, siteType, columns)
}

// ForSpec requests the generated table for a specification of the given kind
func ForSpec(kind SpecKind, typeKey string, columns []ColumnDefinition) TableRequest {
	return TableRequest{kind: requestSpec, specKind: kind, typeKey: typeKey, columns: columns}
}

// Resolve validates the request and returns the canonical table definition
func (r TableRequest) Resolve() (TableDefinition, error) {
	var def TableDefinition

	switch r.kind {
	case requestSpec:
		if err := ValidateTypeKey(r.specKind, r.typeKey); err != nil {
			return def, err
		}
		def.TableName = r.specKind.TableNameFor(r.typeKey)
	default:
		if err := ValidateTableName(r.tableName); err != nil {
			return def, err
		}
		def.TableName = r.tableName
	}

	if err := ValidateColumns(r.columns); err != nil {
		return def, err
	}
	def.Columns = r.columns
	return def, nil
}
