package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Andtit4/site-database-sub001/internal/domain/events"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/internal/infrastructure/persistence"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// ScheduleOff disables the periodic drift check
const ScheduleOff = "off"

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// DriftReport describes how a generated table differs from its specification
type DriftReport struct {
	Kind           schema.SpecKind `json:"kind"`
	Type           string          `json:"type"`
	TableName      string          `json:"tableName"`
	Missing        bool            `json:"missing"`
	ColumnMismatch []string        `json:"columnMismatch,omitempty"`
}

// InSync reports whether the table matches its specification
func (r DriftReport) InSync() bool {
	return !r.Missing && len(r.ColumnMismatch) == 0
}

// SchemaReconciler compares generated tables against their specifications.
// It only reports; nothing is altered.
type SchemaReconciler struct {
	specs    ports.SpecificationStore
	tables   ports.TableManager
	events   ports.EventPublisher
	schedule string

	cron *cron.Cron
	mu   sync.Mutex
	last []DriftReport
	at   time.Time
}

// NewSchemaReconciler creates a new SchemaReconciler
func NewSchemaReconciler(specs ports.SpecificationStore, tables ports.TableManager, bus ports.EventPublisher, schedule string) *SchemaReconciler {
	return &SchemaReconciler{
		specs:    specs,
		tables:   tables,
		events:   bus,
		schedule: strings.TrimSpace(schedule),
	}
}

// ValidateSchedule checks a cron spec or descriptor such as "@every 5m"
func ValidateSchedule(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == ScheduleOff {
		return nil
	}
	if _, err := scheduleParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}
	return nil
}

// Start schedules the periodic check. It returns immediately.
func (r *SchemaReconciler) Start() error {
	if r.schedule == "" || r.schedule == ScheduleOff {
		log.Println("⏰ Schema reconciler disabled")
		return nil
	}

	sched, err := scheduleParser.Parse(r.schedule)
	if err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", r.schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return nil
	}

	r.cron = cron.New(cron.WithParser(scheduleParser))
	r.cron.Schedule(sched, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			log.Printf("❌ Schema reconcile failed: %v", err)
		}
	}))
	r.cron.Start()
	log.Printf("⏰ Schema reconciler scheduled (%s)", r.schedule)
	return nil
}

// Stop waits for a running check to finish
func (r *SchemaReconciler) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		log.Println("⏰ Schema reconciler stopped")
	}
}

// Run checks every specification, remembers the result and announces drift
func (r *SchemaReconciler) Run(ctx context.Context) ([]DriftReport, error) {
	reports, err := r.Check(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.last = reports
	r.at = time.Now()
	r.mu.Unlock()

	var drifted []string
	for _, rep := range reports {
		if !rep.InSync() {
			drifted = append(drifted, rep.TableName)
		}
	}
	if len(drifted) > 0 {
		log.Printf("⚠️ Schema drift on %d tables: %s", len(drifted), strings.Join(drifted, ", "))
		publishBestEffort(ctx, r.events, events.SchemaDriftDetected, events.DriftPayload{TableNames: drifted})
	}
	return reports, nil
}

// Last returns the result of the most recent scheduled run
func (r *SchemaReconciler) Last() ([]DriftReport, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.at
}

// Check compares every specification of both kinds against the catalog
func (r *SchemaReconciler) Check(ctx context.Context) ([]DriftReport, error) {
	reports := make([]DriftReport, 0)
	for _, kind := range []schema.SpecKind{schema.KindEquipment, schema.KindSite} {
		specs, err := r.specs.FindAll(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			rep, err := r.checkOne(ctx, spec)
			if err != nil {
				return nil, err
			}
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

func (r *SchemaReconciler) checkOne(ctx context.Context, spec *models.Specification) (DriftReport, error) {
	rep := DriftReport{Kind: spec.Kind, Type: spec.TypeKey, TableName: spec.TableName()}

	exists, err := r.tables.CheckTableExists(ctx, rep.TableName)
	if err != nil {
		return rep, err
	}
	if !exists {
		rep.Missing = true
		return rep, nil
	}

	physical, err := r.tables.DescribeTable(ctx, rep.TableName)
	if err != nil {
		return rep, err
	}
	rep.ColumnMismatch = CompareColumns(spec.Columns, physical)
	return rep, nil
}

// CompareColumns lists differences between declared columns (after the fixed
// prefix) and the physical columns, position by position.
func CompareColumns(declared []schema.ColumnDefinition, physical []ports.PhysicalColumn) []string {
	type expectedCol struct {
		name    string
		sqlType string
	}
	expected := make([]expectedCol, 0, len(declared)+4)
	for _, name := range constants.FixedSpecColumns() {
		expected = append(expected, expectedCol{name: name})
	}
	for _, col := range declared {
		expected = append(expected, expectedCol{name: col.Name, sqlType: persistence.CatalogType(col)})
	}

	var diffs []string
	for i := 0; i < len(expected) || i < len(physical); i++ {
		switch {
		case i >= len(physical):
			diffs = append(diffs, fmt.Sprintf("missing column %s", expected[i].name))
		case i >= len(expected):
			diffs = append(diffs, fmt.Sprintf("unexpected column %s", physical[i].Name))
		case !strings.EqualFold(expected[i].name, physical[i].Name):
			diffs = append(diffs, fmt.Sprintf("position %d: expected %s, found %s", i+1, expected[i].name, physical[i].Name))
		case expected[i].sqlType != "" && expected[i].sqlType != normalizeCatalogType(physical[i].ColumnType):
			diffs = append(diffs, fmt.Sprintf("column %s: expected %s, found %s", expected[i].name, expected[i].sqlType, physical[i].ColumnType))
		}
	}
	return diffs
}

// normalizeCatalogType drops the integer display width older MySQL versions report
func normalizeCatalogType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if strings.HasPrefix(t, "int(") {
		return "int"
	}
	return t
}
