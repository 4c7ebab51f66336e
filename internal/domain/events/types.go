package events

import "github.com/Andtit4/site-database-sub001/internal/domain/schema"

// EventType defines the type of event in the system
type EventType string

const (
	// Specification Events
	SpecificationCreated EventType = "specification.created"
	SpecificationUpdated EventType = "specification.updated"
	SpecificationDeleted EventType = "specification.deleted"

	// Schema Events
	SchemaDriftDetected EventType = "schema.drift_detected"

	// Inventory Events
	SiteDeleted EventType = "site.deleted"
)

// String returns the string representation of the event type
func (e EventType) String() string {
	return string(e)
}

// SpecificationPayload accompanies the specification.* events
type SpecificationPayload struct {
	ID          string          `json:"id"`
	Kind        schema.SpecKind `json:"kind"`
	TypeKey     string          `json:"typeKey"`
	TableName   string          `json:"tableName"`
	DroppedRows int64           `json:"droppedRows,omitempty"`
}

// DriftPayload accompanies schema.drift_detected
type DriftPayload struct {
	TableNames []string `json:"tableNames"`
}

// SitePayload accompanies site.* events
type SitePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
