package constants

// Common column names
const (
	FieldID        = "id"
	FieldSiteID    = "site_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldName      = "name"
	FieldStatus    = "status"
)

// specifications / site_specifications
const (
	FieldSpec_EquipmentType = "equipment_type"
	FieldSpec_SiteType      = "site_type"
	FieldSpec_Columns       = "columns"
)

// site
const (
	FieldSite_SiteType  = "site_type"
	FieldSite_Region    = "region"
	FieldSite_Latitude  = "latitude"
	FieldSite_Longitude = "longitude"
)

// equipment
const (
	FieldEquipment_EquipmentType = "equipment_type"
	FieldEquipment_Model         = "model"
	FieldEquipment_Manufacturer  = "manufacturer"
)

// notifications
const (
	FieldNotification_Title   = "title"
	FieldNotification_Message = "message"
	FieldNotification_Type    = "type"
	FieldNotification_IsRead  = "is_read"
)

// users
const (
	FieldUser_Email        = "email"
	FieldUser_PasswordHash = "password_hash"
	FieldUser_Role         = "role"
)

// FixedSpecColumns are the columns every generated specification table starts with.
func FixedSpecColumns() []string {
	return []string{FieldID, FieldSiteID, FieldCreatedAt, FieldUpdatedAt}
}
