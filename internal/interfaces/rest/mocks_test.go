package rest_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/auth"
)

type MockSpecificationService struct {
	mock.Mock
}

func (m *MockSpecificationService) Create(ctx context.Context, kind schema.SpecKind, typeKey string, columns []schema.ColumnDefinition) (*models.Specification, error) {
	args := m.Called(ctx, kind, typeKey, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Specification), args.Error(1)
}

func (m *MockSpecificationService) FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Specification), args.Error(1)
}

func (m *MockSpecificationService) FindOne(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Specification), args.Error(1)
}

func (m *MockSpecificationService) Update(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) (*services.UpdateResult, error) {
	args := m.Called(ctx, kind, id, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UpdateResult), args.Error(1)
}

func (m *MockSpecificationService) Remove(ctx context.Context, kind schema.SpecKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) Create(ctx context.Context, in services.SiteInput) (*models.Site, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Site), args.Error(1)
}

func (m *MockSiteService) List(ctx context.Context, siteType string, limit int) ([]*models.Site, error) {
	args := m.Called(ctx, siteType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Site), args.Error(1)
}

func (m *MockSiteService) Get(ctx context.Context, id string) (*models.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Site), args.Error(1)
}

func (m *MockSiteService) Update(ctx context.Context, id string, in services.SiteInput) (*models.Site, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Site), args.Error(1)
}

func (m *MockSiteService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) Create(ctx context.Context, in services.EquipmentInput) (*models.Equipment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error) {
	args := m.Called(ctx, siteID, equipmentType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) ListBySite(ctx context.Context, siteID string, limit int) ([]*models.Equipment, error) {
	args := m.Called(ctx, siteID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) Update(ctx context.Context, id string, in services.EquipmentInput) (*models.Equipment, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id string) (*auth.UserSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserSession), args.Error(1)
}

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

type stubDrift struct {
	reports []services.DriftReport
	at      time.Time
	err     error
}

func (s stubDrift) Check(context.Context) ([]services.DriftReport, error) {
	return s.reports, s.err
}

func (s stubDrift) Last() ([]services.DriftReport, time.Time) {
	return s.reports, s.at
}
