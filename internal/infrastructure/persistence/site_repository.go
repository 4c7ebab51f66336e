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

// SiteRepository handles database operations for sites
type SiteRepository struct {
	db *sql.DB
}

var _ ports.SiteStore = (*SiteRepository)(nil)

// NewSiteRepository creates a new SiteRepository
func NewSiteRepository(db *sql.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

var siteSelect = fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s",
	constants.FieldID, constants.FieldName, constants.FieldSite_SiteType, constants.FieldSite_Region,
	constants.FieldSite_Latitude, constants.FieldSite_Longitude, constants.FieldStatus,
	constants.FieldCreatedAt, constants.FieldUpdatedAt, constants.TableSite)

// Insert creates a new site
func (r *SiteRepository) Insert(ctx context.Context, site *models.Site) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		constants.TableSite, constants.FieldID, constants.FieldName, constants.FieldSite_SiteType,
		constants.FieldSite_Region, constants.FieldSite_Latitude, constants.FieldSite_Longitude,
		constants.FieldStatus, constants.FieldCreatedAt, constants.FieldUpdatedAt)

	_, err := r.db.ExecContext(ctx, query,
		site.ID, site.Name, site.SiteType, site.Region, site.Latitude, site.Longitude, site.Status)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}
	return nil
}

// List returns sites ordered by name, optionally filtered by site type
func (r *SiteRepository) List(ctx context.Context, siteType string, limit int) ([]*models.Site, error) {
	query := siteSelect
	args := []interface{}{}
	if siteType != "" {
		query += fmt.Sprintf(" WHERE %s = ?", constants.FieldSite_SiteType)
		args = append(args, siteType)
	}
	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT ?", constants.FieldName)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sites := make([]*models.Site, 0)
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// FindByID returns the site or a NotFoundError
func (r *SiteRepository) FindByID(ctx context.Context, id string) (*models.Site, error) {
	query := siteSelect + fmt.Sprintf(" WHERE %s = ? LIMIT 1", constants.FieldID)

	s, err := scanSite(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFoundError("Site", id)
	}
	return s, err
}

// Update overwrites the mutable fields of a site
func (r *SiteRepository) Update(ctx context.Context, site *models.Site) error {
	query := fmt.Sprintf("UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = NOW() WHERE %s = ?",
		constants.TableSite, constants.FieldName, constants.FieldSite_SiteType, constants.FieldSite_Region,
		constants.FieldSite_Latitude, constants.FieldSite_Longitude, constants.FieldStatus,
		constants.FieldUpdatedAt, constants.FieldID)

	_, err := r.db.ExecContext(ctx, query,
		site.Name, site.SiteType, site.Region, site.Latitude, site.Longitude, site.Status, site.ID)
	if err != nil {
		return fmt.Errorf("failed to update site %s: %w", site.ID, err)
	}
	return nil
}

// Delete removes a site. Equipment and generated specification rows cascade.
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", constants.TableSite, constants.FieldID)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete site %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewNotFoundError("Site", id)
	}
	return nil
}

func scanSite(row rowScanner) (*models.Site, error) {
	var s models.Site
	var region sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(&s.ID, &s.Name, &s.SiteType, &region, &lat, &lng, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan site: %w", err)
	}

	if region.Valid {
		s.Region = &region.String
	}
	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lng.Valid {
		s.Longitude = &lng.Float64
	}
	return &s, nil
}
