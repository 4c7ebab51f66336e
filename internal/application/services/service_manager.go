package services

import (
	"database/sql"

	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/infrastructure/persistence"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
)

// ServiceManager orchestrates all services with dependency injection
type ServiceManager struct {
	db *sql.DB

	EventBus       *EventBus
	Tables         *persistence.TableManager
	Specifications *SpecificationService
	Sites          *SiteService
	Equipment      *EquipmentService
	Notifications  *NotificationService
	Auth           *AuthService
	Reconciler     *SchemaReconciler
}

// ServiceOptions carries the runtime settings services need
type ServiceOptions struct {
	Locker            ports.Locker
	Tokens            *auth.TokenIssuer
	ReconcileSchedule string
}

// NewServiceManager creates a new service manager with all dependencies wired
func NewServiceManager(db *sql.DB, opts ServiceOptions) *ServiceManager {
	sm := &ServiceManager{db: db}

	specRepo := persistence.NewSpecificationRepository(db)
	siteRepo := persistence.NewSiteRepository(db)

	sm.EventBus = NewEventBus()
	sm.Tables = persistence.NewTableManager(db, opts.Locker)

	// Reuse the table manager's locker so spec-level and table-level locks share one backend
	locker := opts.Locker
	if locker == nil {
		locker = sm.Tables.Locker()
	}

	sm.Specifications = NewSpecificationService(specRepo, sm.Tables, locker, sm.EventBus)
	sm.Sites = NewSiteService(siteRepo, sm.EventBus)
	sm.Equipment = NewEquipmentService(persistence.NewEquipmentRepository(db), siteRepo)
	sm.Notifications = NewNotificationService(persistence.NewNotificationRepository(db))
	sm.Auth = NewAuthService(persistence.NewUserRepository(db), opts.Tokens)
	sm.Reconciler = NewSchemaReconciler(specRepo, sm.Tables, sm.EventBus, opts.ReconcileSchedule)

	sm.Notifications.RegisterHandlers(sm.EventBus)

	return sm
}
