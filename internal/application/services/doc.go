// Package services provides the business logic layer of the site inventory.
//
// This package contains:
//   - Specification management and the generated tables behind it (SpecificationService)
//   - Site and equipment inventory (SiteService, EquipmentService)
//   - Admin notifications fed by domain events (NotificationService, EventBus)
//   - Periodic schema drift detection (SchemaReconciler)
//   - Login and bootstrap admin (AuthService)
//
// Services depend on the interfaces in internal/domain/ports and are wired
// together by ServiceManager.
package services
