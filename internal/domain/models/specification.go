package models

import (
	"time"

	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
)

// Specification is the persisted schema definition for one equipment or site type.
// TypeKey holds equipmentType or siteType depending on Kind.
type Specification struct {
	ID        string                    `json:"id"`
	Kind      schema.SpecKind           `json:"kind"`
	TypeKey   string                    `json:"-"`
	Columns   []schema.ColumnDefinition `json:"columns"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// TableName is the generated table backing this specification
func (s *Specification) TableName() string {
	return s.Kind.TableNameFor(s.TypeKey)
}

// MarshalView renders the API shape, exposing the type key under the
// kind-specific field name (equipmentType or siteType).
func (s *Specification) MarshalView() map[string]interface{} {
	return map[string]interface{}{
		"id":              s.ID,
		s.Kind.TypeField(): s.TypeKey,
		"columns":         s.Columns,
		"tableName":       s.TableName(),
		"createdAt":       s.CreatedAt,
		"updatedAt":       s.UpdatedAt,
	}
}
