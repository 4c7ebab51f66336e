package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Andtit4/site-database-sub001/internal/domain/events"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
	"github.com/Andtit4/site-database-sub001/pkg/utils"
)

// NotificationService stores admin notifications and turns domain events into them
type NotificationService struct {
	store ports.NotificationStore
	now   func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store ports.NotificationStore) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// List returns the newest notifications. limit is clamped to [1, DefaultMaxLimit].
func (s *NotificationService) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error) {
	return s.store.List(ctx, unreadOnly, clampLimit(limit))
}

// MarkAsRead marks a notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	return s.store.MarkAsRead(ctx, id)
}

// Create stores a new unread notification
func (s *NotificationService) Create(ctx context.Context, title, message, notificationType string) (*models.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, appErrors.NewValidationError("title", "title is required")
	}
	if notificationType == "" {
		notificationType = constants.NotificationInfo
	}

	n := &models.Notification{
		ID:        utils.GenerateID(),
		Title:     title,
		Message:   message,
		Type:      notificationType,
		CreatedAt: s.now(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// RegisterHandlers subscribes the service to the events admins are told about
func (s *NotificationService) RegisterHandlers(bus ports.EventPublisher) {
	bus.Subscribe(events.SpecificationCreated, func(ctx context.Context, payload interface{}) error {
		p, ok := payload.(events.SpecificationPayload)
		if !ok {
			return nil
		}
		_, err := s.Create(ctx,
			fmt.Sprintf("%s created", p.Kind.Resource()),
			fmt.Sprintf("Table %s created for %s %s", p.TableName, p.Kind.TypeField(), p.TypeKey),
			constants.NotificationInfo)
		return err
	})

	bus.Subscribe(events.SpecificationUpdated, func(ctx context.Context, payload interface{}) error {
		p, ok := payload.(events.SpecificationPayload)
		if !ok {
			return nil
		}
		notificationType := constants.NotificationInfo
		message := fmt.Sprintf("Table %s was recreated from the new column list", p.TableName)
		if p.DroppedRows > 0 {
			notificationType = constants.NotificationWarning
			message = fmt.Sprintf("Table %s was recreated from the new column list; %d rows were discarded", p.TableName, p.DroppedRows)
		}
		_, err := s.Create(ctx, fmt.Sprintf("%s %s updated", p.Kind.Resource(), p.TypeKey), message, notificationType)
		return err
	})

	bus.Subscribe(events.SpecificationDeleted, func(ctx context.Context, payload interface{}) error {
		p, ok := payload.(events.SpecificationPayload)
		if !ok {
			return nil
		}
		_, err := s.Create(ctx,
			fmt.Sprintf("%s %s deleted", p.Kind.Resource(), p.TypeKey),
			fmt.Sprintf("Table %s was dropped", p.TableName),
			constants.NotificationWarning)
		return err
	})

	bus.Subscribe(events.SiteDeleted, func(ctx context.Context, payload interface{}) error {
		p, ok := payload.(events.SitePayload)
		if !ok {
			return nil
		}
		_, err := s.Create(ctx, fmt.Sprintf("Site %s deleted", p.Name),
			"Its equipment and specification rows were removed with it",
			constants.NotificationInfo)
		return err
	})

	bus.Subscribe(events.SchemaDriftDetected, func(ctx context.Context, payload interface{}) error {
		p, ok := payload.(events.DriftPayload)
		if !ok || len(p.TableNames) == 0 {
			return nil
		}
		_, err := s.Create(ctx, "Schema drift detected",
			fmt.Sprintf("%d generated tables no longer match their specification: %s", len(p.TableNames), strings.Join(p.TableNames, ", ")),
			constants.NotificationWarning)
		return err
	})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultLimit
	}
	if limit > constants.DefaultMaxLimit {
		return constants.DefaultMaxLimit
	}
	return limit
}
