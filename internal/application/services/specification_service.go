package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Andtit4/site-database-sub001/internal/domain/events"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
	"github.com/Andtit4/site-database-sub001/pkg/utils"
)

// UpdateResult reports the outcome of a destructive specification update
type UpdateResult struct {
	Specification  *models.Specification `json:"specification"`
	TableRecreated bool                  `json:"tableRecreated"`
	DroppedRows    int64                 `json:"droppedRows"`
}

// SpecificationService keeps specification metadata and the generated tables in step.
// Mutations for one type key are serialized through the locker.
type SpecificationService struct {
	specs  ports.SpecificationStore
	tables ports.TableManager
	locker ports.Locker
	events ports.EventPublisher
	now    func() time.Time
}

// NewSpecificationService creates a new SpecificationService
func NewSpecificationService(specs ports.SpecificationStore, tables ports.TableManager, locker ports.Locker, bus ports.EventPublisher) *SpecificationService {
	return &SpecificationService{
		specs:  specs,
		tables: tables,
		locker: locker,
		events: bus,
		now:    time.Now,
	}
}

func (s *SpecificationService) lockType(ctx context.Context, kind schema.SpecKind, typeKey string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, "spec:"+kind.TableNameFor(typeKey))
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s %s: %w", kind.Resource(), typeKey, err)
	}
	return unlock, nil
}

// lockSpec locks the type key of specification id and reloads it under the lock,
// so a concurrent Remove surfaces as a NotFoundError instead of a stale read.
func (s *SpecificationService) lockSpec(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, func(), error) {
	spec, err := s.specs.FindByID(ctx, kind, id)
	if err != nil {
		return nil, nil, err
	}

	unlock, err := s.lockType(ctx, kind, spec.TypeKey)
	if err != nil {
		return nil, nil, err
	}

	spec, err = s.specs.FindByID(ctx, kind, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return spec, unlock, nil
}

// Create registers a specification for typeKey and creates its table.
// If the metadata insert fails the new table is dropped again.
func (s *SpecificationService) Create(ctx context.Context, kind schema.SpecKind, typeKey string, columns []schema.ColumnDefinition) (*models.Specification, error) {
	typeKey = strings.TrimSpace(typeKey)
	req := schema.ForSpec(kind, typeKey, columns)
	if _, err := req.Resolve(); err != nil {
		return nil, err
	}

	unlock, err := s.lockType(ctx, kind, typeKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.specs.FindByType(ctx, kind, typeKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewConflictError(kind.Resource(), kind.TypeField(), typeKey)
	}

	def, err := s.tables.CreateTable(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	spec := &models.Specification{
		ID:        utils.GenerateID(),
		Kind:      kind,
		TypeKey:   typeKey,
		Columns:   columns,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.specs.Insert(ctx, spec); err != nil {
		// A conflict means another writer owns this table now; leave it alone
		if !appErrors.IsConflict(err) {
			log.Printf("⚠️ Registering %s %s failed. Rolling back table creation: %s", kind.Resource(), typeKey, def.TableName)
			if dropErr := s.tables.DropTable(ctx, def.TableName); dropErr != nil {
				log.Printf("⚠️ Failed to cleanup table %s: %v", def.TableName, dropErr)
			}
		}
		return nil, err
	}

	log.Printf("✅ %s %s registered with table %s", kind.Resource(), typeKey, def.TableName)
	publishBestEffort(ctx, s.events, events.SpecificationCreated, events.SpecificationPayload{
		ID: spec.ID, Kind: kind, TypeKey: typeKey, TableName: def.TableName,
	})
	return spec, nil
}

// FindAll lists the specifications of kind, oldest first
func (s *SpecificationService) FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error) {
	return s.specs.FindAll(ctx, kind)
}

// FindOne returns one specification or a NotFoundError
func (s *SpecificationService) FindOne(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error) {
	return s.specs.FindByID(ctx, kind, id)
}

// Update replaces the column list and recreates the table from it.
// Existing rows of the generated table are discarded; the count is reported back.
func (s *SpecificationService) Update(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) (*UpdateResult, error) {
	if err := schema.ValidateColumns(columns); err != nil {
		return nil, err
	}

	spec, unlock, err := s.lockSpec(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tableName := spec.TableName()
	var dropped int64
	exists, err := s.tables.CheckTableExists(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if exists {
		if dropped, err = s.tables.CountRows(ctx, tableName); err != nil {
			return nil, err
		}
	}

	if _, err := s.tables.CreateTable(ctx, schema.ForSpec(kind, spec.TypeKey, columns)); err != nil {
		return nil, err
	}

	if err := s.specs.UpdateColumns(ctx, kind, id, columns); err != nil {
		// The table already matches the new columns; the reconciler reports the mismatch
		log.Printf("❌ Table %s recreated but %s %s metadata update failed: %v", tableName, kind.Resource(), id, err)
		return nil, err
	}

	spec.Columns = columns
	spec.UpdatedAt = s.now()

	if dropped > 0 {
		log.Printf("⚠️ %s %s update discarded %d rows from %s", kind.Resource(), spec.TypeKey, dropped, tableName)
	}
	publishBestEffort(ctx, s.events, events.SpecificationUpdated, events.SpecificationPayload{
		ID: spec.ID, Kind: kind, TypeKey: spec.TypeKey, TableName: tableName, DroppedRows: dropped,
	})

	return &UpdateResult{Specification: spec, TableRecreated: true, DroppedRows: dropped}, nil
}

// Remove drops the generated table and deletes the specification
func (s *SpecificationService) Remove(ctx context.Context, kind schema.SpecKind, id string) error {
	spec, unlock, err := s.lockSpec(ctx, kind, id)
	if err != nil {
		return err
	}
	defer unlock()

	tableName := spec.TableName()
	if err := s.tables.DropTable(ctx, tableName); err != nil {
		return err
	}
	if err := s.specs.Delete(ctx, kind, id); err != nil {
		return err
	}

	publishBestEffort(ctx, s.events, events.SpecificationDeleted, events.SpecificationPayload{
		ID: spec.ID, Kind: kind, TypeKey: spec.TypeKey, TableName: tableName,
	})
	return nil
}

// TablesFor maps generated table names to their specification for kind
func (s *SpecificationService) TablesFor(ctx context.Context, kind schema.SpecKind) (map[string]*models.Specification, error) {
	specs, err := s.specs.FindAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	tables := make(map[string]*models.Specification, len(specs))
	for _, spec := range specs {
		tables[spec.TableName()] = spec
	}
	return tables, nil
}
