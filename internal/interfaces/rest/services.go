package rest

import (
	"context"
	"time"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
)

// The handlers depend on these narrow views of the application services so
// they can be exercised with mocks.

// SpecificationService manages equipment and site specifications
type SpecificationService interface {
	Create(ctx context.Context, kind schema.SpecKind, typeKey string, columns []schema.ColumnDefinition) (*models.Specification, error)
	FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error)
	FindOne(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error)
	Update(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) (*services.UpdateResult, error)
	Remove(ctx context.Context, kind schema.SpecKind, id string) error
}

// SiteService manages sites
type SiteService interface {
	Create(ctx context.Context, in services.SiteInput) (*models.Site, error)
	List(ctx context.Context, siteType string, limit int) ([]*models.Site, error)
	Get(ctx context.Context, id string) (*models.Site, error)
	Update(ctx context.Context, id string, in services.SiteInput) (*models.Site, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentService manages equipment
type EquipmentService interface {
	Create(ctx context.Context, in services.EquipmentInput) (*models.Equipment, error)
	List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error)
	ListBySite(ctx context.Context, siteID string, limit int) ([]*models.Equipment, error)
	Get(ctx context.Context, id string) (*models.Equipment, error)
	Update(ctx context.Context, id string, in services.EquipmentInput) (*models.Equipment, error)
	Delete(ctx context.Context, id string) error
}

// NotificationService lists and acknowledges notifications
type NotificationService interface {
	List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// AuthService signs users in
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	GetUserByID(ctx context.Context, id string) (*auth.UserSession, error)
}

// DriftChecker reports schema drift of generated tables
type DriftChecker interface {
	Check(ctx context.Context) ([]services.DriftReport, error)
	Last() ([]services.DriftReport, time.Time)
}

// SpecificationIndex maps generated tables back to their specification
type SpecificationIndex interface {
	TablesFor(ctx context.Context, kind schema.SpecKind) (map[string]*models.Specification, error)
}

var (
	_ SpecificationService = (*services.SpecificationService)(nil)
	_ SiteService          = (*services.SiteService)(nil)
	_ EquipmentService     = (*services.EquipmentService)(nil)
	_ NotificationService  = (*services.NotificationService)(nil)
	_ AuthService          = (*services.AuthService)(nil)
	_ DriftChecker         = (*services.SchemaReconciler)(nil)
	_ SpecificationIndex   = (*services.SpecificationService)(nil)
)
