package ports

import (
	"context"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
)

// SpecificationStore persists specification metadata
type SpecificationStore interface {
	Insert(ctx context.Context, spec *models.Specification) error
	FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error)
	FindByID(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error)
	// FindByType returns nil, nil when no specification exists for typeKey.
	FindByType(ctx context.Context, kind schema.SpecKind, typeKey string) (*models.Specification, error)
	UpdateColumns(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) error
	Delete(ctx context.Context, kind schema.SpecKind, id string) error
}

// SiteStore persists sites
type SiteStore interface {
	Insert(ctx context.Context, site *models.Site) error
	List(ctx context.Context, siteType string, limit int) ([]*models.Site, error)
	FindByID(ctx context.Context, id string) (*models.Site, error)
	Update(ctx context.Context, site *models.Site) error
	Delete(ctx context.Context, id string) error
}

// EquipmentStore persists equipment
type EquipmentStore interface {
	Insert(ctx context.Context, e *models.Equipment) error
	List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error)
	FindByID(ctx context.Context, id string) (*models.Equipment, error)
	Update(ctx context.Context, e *models.Equipment) error
	Delete(ctx context.Context, id string) error
}

// NotificationStore persists notifications
type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// UserStore persists user accounts
type UserStore interface {
	CountUsers(ctx context.Context) (int, error)
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}
