package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

// EquipmentRepository handles database operations for equipment
type EquipmentRepository struct {
	db *sql.DB
}

var _ ports.EquipmentStore = (*EquipmentRepository)(nil)

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

var equipmentSelect = fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s",
	constants.FieldID, constants.FieldSiteID, constants.FieldName, constants.FieldEquipment_EquipmentType,
	constants.FieldEquipment_Model, constants.FieldEquipment_Manufacturer, constants.FieldStatus,
	constants.FieldCreatedAt, constants.FieldUpdatedAt, constants.TableEquipment)

// Insert creates new equipment. An unknown site is reported as a validation error.
func (r *EquipmentRepository) Insert(ctx context.Context, e *models.Equipment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		constants.TableEquipment, constants.FieldID, constants.FieldSiteID, constants.FieldName,
		constants.FieldEquipment_EquipmentType, constants.FieldEquipment_Model,
		constants.FieldEquipment_Manufacturer, constants.FieldStatus,
		constants.FieldCreatedAt, constants.FieldUpdatedAt)

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.SiteID, e.Name, e.EquipmentType, e.Model, e.Manufacturer, e.Status)
	if err != nil {
		if isMissingParent(err) {
			return appErrors.NewValidationError("siteId", fmt.Sprintf("site '%s' does not exist", e.SiteID))
		}
		return fmt.Errorf("failed to insert equipment: %w", err)
	}
	return nil
}

// List returns equipment ordered by name. Empty filters are ignored.
func (r *EquipmentRepository) List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error) {
	query := equipmentSelect + " WHERE 1=1"
	args := []interface{}{}
	if siteID != "" {
		query += fmt.Sprintf(" AND %s = ?", constants.FieldSiteID)
		args = append(args, siteID)
	}
	if equipmentType != "" {
		query += fmt.Sprintf(" AND %s = ?", constants.FieldEquipment_EquipmentType)
		args = append(args, equipmentType)
	}
	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT ?", constants.FieldName)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*models.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// FindByID returns the equipment or a NotFoundError
func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	query := equipmentSelect + fmt.Sprintf(" WHERE %s = ? LIMIT 1", constants.FieldID)

	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFoundError("Equipment", id)
	}
	return e, err
}

// Update overwrites the mutable fields of equipment
func (r *EquipmentRepository) Update(ctx context.Context, e *models.Equipment) error {
	query := fmt.Sprintf("UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = NOW() WHERE %s = ?",
		constants.TableEquipment, constants.FieldSiteID, constants.FieldName,
		constants.FieldEquipment_EquipmentType, constants.FieldEquipment_Model,
		constants.FieldEquipment_Manufacturer, constants.FieldStatus,
		constants.FieldUpdatedAt, constants.FieldID)

	_, err := r.db.ExecContext(ctx, query,
		e.SiteID, e.Name, e.EquipmentType, e.Model, e.Manufacturer, e.Status, e.ID)
	if err != nil {
		if isMissingParent(err) {
			return appErrors.NewValidationError("siteId", fmt.Sprintf("site '%s' does not exist", e.SiteID))
		}
		return fmt.Errorf("failed to update equipment %s: %w", e.ID, err)
	}
	return nil
}

// Delete removes equipment
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", constants.TableEquipment, constants.FieldID)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewNotFoundError("Equipment", id)
	}
	return nil
}

func scanEquipment(row rowScanner) (*models.Equipment, error) {
	var e models.Equipment
	var model, manufacturer sql.NullString

	err := row.Scan(&e.ID, &e.SiteID, &e.Name, &e.EquipmentType, &model, &manufacturer, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}

	if model.Valid {
		e.Model = &model.String
	}
	if manufacturer.Valid {
		e.Manufacturer = &manufacturer.String
	}
	return &e, nil
}
