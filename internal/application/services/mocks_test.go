package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
)

// MockSpecificationStore is a mock implementation of ports.SpecificationStore
type MockSpecificationStore struct {
	mock.Mock
}

func (m *MockSpecificationStore) Insert(ctx context.Context, spec *models.Specification) error {
	return m.Called(ctx, spec).Error(0)
}

func (m *MockSpecificationStore) FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Specification), args.Error(1)
}

func (m *MockSpecificationStore) FindByID(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Specification), args.Error(1)
}

func (m *MockSpecificationStore) FindByType(ctx context.Context, kind schema.SpecKind, typeKey string) (*models.Specification, error) {
	args := m.Called(ctx, kind, typeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Specification), args.Error(1)
}

func (m *MockSpecificationStore) UpdateColumns(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) error {
	return m.Called(ctx, kind, id, columns).Error(0)
}

func (m *MockSpecificationStore) Delete(ctx context.Context, kind schema.SpecKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

// MockTableManager is a mock implementation of ports.TableManager
type MockTableManager struct {
	mock.Mock
}

func (m *MockTableManager) CreateTable(ctx context.Context, req schema.TableRequest) (schema.TableDefinition, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(schema.TableDefinition), args.Error(1)
}

func (m *MockTableManager) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	args := m.Called(ctx, tableName)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableManager) DropTable(ctx context.Context, tableName string) error {
	return m.Called(ctx, tableName).Error(0)
}

func (m *MockTableManager) DescribeTable(ctx context.Context, tableName string) ([]ports.PhysicalColumn, error) {
	args := m.Called(ctx, tableName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.PhysicalColumn), args.Error(1)
}

func (m *MockTableManager) CountRows(ctx context.Context, tableName string) (int64, error) {
	args := m.Called(ctx, tableName)
	return args.Get(0).(int64), args.Error(1)
}

// MockSiteStore is a mock implementation of ports.SiteStore
type MockSiteStore struct {
	mock.Mock
}

func (m *MockSiteStore) Insert(ctx context.Context, site *models.Site) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteStore) List(ctx context.Context, siteType string, limit int) ([]*models.Site, error) {
	args := m.Called(ctx, siteType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Site), args.Error(1)
}

func (m *MockSiteStore) FindByID(ctx context.Context, id string) (*models.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Site), args.Error(1)
}

func (m *MockSiteStore) Update(ctx context.Context, site *models.Site) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockEquipmentStore is a mock implementation of ports.EquipmentStore
type MockEquipmentStore struct {
	mock.Mock
}

func (m *MockEquipmentStore) Insert(ctx context.Context, e *models.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEquipmentStore) List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error) {
	args := m.Called(ctx, siteID, equipmentType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentStore) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentStore) Update(ctx context.Context, e *models.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEquipmentStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserStore is a mock implementation of ports.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) Insert(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// memoryNotificationStore records notifications in memory
type memoryNotificationStore struct {
	mu    sync.Mutex
	items []*models.Notification
}

func (s *memoryNotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	return nil
}

func (s *memoryNotificationStore) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Notification, 0)
	for _, n := range s.items {
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memoryNotificationStore) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}

// noopLocker grants every lock immediately
type noopLocker struct{}

func (noopLocker) Lock(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}
