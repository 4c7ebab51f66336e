package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

// SpecificationRepository persists equipment and site specifications.
// Both kinds share one row shape and differ only in table and type column.
type SpecificationRepository struct {
	db *sql.DB
}

var _ ports.SpecificationStore = (*SpecificationRepository)(nil)

// NewSpecificationRepository creates a new SpecificationRepository
func NewSpecificationRepository(db *sql.DB) *SpecificationRepository {
	return &SpecificationRepository{db: db}
}

func selectSpecColumns(kind schema.SpecKind) string {
	return fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s",
		constants.FieldID, kind.TypeColumn(), constants.FieldSpec_Columns,
		constants.FieldCreatedAt, constants.FieldUpdatedAt, kind.MetadataTable())
}

// Insert stores a new specification. A duplicate type key is a ConflictError.
func (r *SpecificationRepository) Insert(ctx context.Context, spec *models.Specification) error {
	columnsJSON, err := json.Marshal(spec.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, NOW(), NOW())",
		spec.Kind.MetadataTable(), constants.FieldID, spec.Kind.TypeColumn(), constants.FieldSpec_Columns,
		constants.FieldCreatedAt, constants.FieldUpdatedAt)

	if _, err := r.db.ExecContext(ctx, query, spec.ID, spec.TypeKey, string(columnsJSON)); err != nil {
		if isDuplicateEntry(err) {
			return appErrors.NewConflictError(spec.Kind.Resource(), spec.Kind.TypeField(), spec.TypeKey)
		}
		return fmt.Errorf("failed to insert %s: %w", spec.Kind.Resource(), err)
	}
	return nil
}

// FindAll returns every specification of kind, oldest first
func (r *SpecificationRepository) FindAll(ctx context.Context, kind schema.SpecKind) ([]*models.Specification, error) {
	query := selectSpecColumns(kind) + fmt.Sprintf(" ORDER BY %s ASC", constants.FieldCreatedAt)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Resource(), err)
	}
	defer func() { _ = rows.Close() }()

	specs := make([]*models.Specification, 0)
	for rows.Next() {
		spec, err := scanSpecification(rows, kind)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

// FindByID returns the specification or a NotFoundError
func (r *SpecificationRepository) FindByID(ctx context.Context, kind schema.SpecKind, id string) (*models.Specification, error) {
	query := selectSpecColumns(kind) + fmt.Sprintf(" WHERE %s = ? LIMIT 1", constants.FieldID)

	spec, err := scanSpecification(r.db.QueryRowContext(ctx, query, id), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFoundError(kind.Resource(), id)
	}
	return spec, err
}

// FindByType returns the specification for typeKey, or nil if there is none.
// The comparison follows the column collation, so it is case-insensitive.
func (r *SpecificationRepository) FindByType(ctx context.Context, kind schema.SpecKind, typeKey string) (*models.Specification, error) {
	query := selectSpecColumns(kind) + fmt.Sprintf(" WHERE %s = ? LIMIT 1", kind.TypeColumn())

	spec, err := scanSpecification(r.db.QueryRowContext(ctx, query, typeKey), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return spec, err
}

// UpdateColumns replaces the stored column list
func (r *SpecificationRepository) UpdateColumns(ctx context.Context, kind schema.SpecKind, id string, columns []schema.ColumnDefinition) error {
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := fmt.Sprintf("UPDATE %s SET %s = ?, %s = NOW() WHERE %s = ?",
		kind.MetadataTable(), constants.FieldSpec_Columns, constants.FieldUpdatedAt, constants.FieldID)
	res, err := r.db.ExecContext(ctx, query, string(columnsJSON), id)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind.Resource(), id, err)
	}
	// Matched rows, not changed rows: the DSN sets clientFoundRows
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewNotFoundError(kind.Resource(), id)
	}
	return nil
}

// Delete removes the specification row
func (r *SpecificationRepository) Delete(ctx context.Context, kind schema.SpecKind, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", kind.MetadataTable(), constants.FieldID)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind.Resource(), id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewNotFoundError(kind.Resource(), id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecification(row rowScanner, kind schema.SpecKind) (*models.Specification, error) {
	spec := &models.Specification{Kind: kind}
	var columnsJSON []byte

	if err := row.Scan(&spec.ID, &spec.TypeKey, &columnsJSON, &spec.CreatedAt, &spec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan %s: %w", kind.Resource(), err)
	}

	if err := json.Unmarshal(columnsJSON, &spec.Columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns of %s %s: %w", kind.Resource(), spec.ID, err)
	}
	return spec, nil
}
