package constants

// HTTP and API constants
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "

	ResponseError = "error"
	FieldMessage  = "message"

	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsAdminRole checks if a role has administrative privileges
func IsAdminRole(role string) bool {
	return role == RoleAdmin
}

// Notification types
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
)

// Site / equipment status values
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
)

// Paging defaults
const (
	DefaultLimit    = 50
	DefaultMaxLimit = 500
)
