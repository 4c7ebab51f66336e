package services

import (
	"context"
	"strings"
	"time"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
	"github.com/Andtit4/site-database-sub001/pkg/utils"
)

// EquipmentInput is the writable part of equipment
type EquipmentInput struct {
	SiteID        string  `json:"siteId"`
	Name          string  `json:"name"`
	EquipmentType string  `json:"equipmentType"`
	Model         *string `json:"model"`
	Manufacturer  *string `json:"manufacturer"`
	Status        string  `json:"status"`
}

// EquipmentService manages equipment installed on sites
type EquipmentService struct {
	equipment ports.EquipmentStore
	sites     ports.SiteStore
	now       func() time.Time
}

// NewEquipmentService creates a new EquipmentService
func NewEquipmentService(equipment ports.EquipmentStore, sites ports.SiteStore) *EquipmentService {
	return &EquipmentService{equipment: equipment, sites: sites, now: time.Now}
}

// Create validates and stores new equipment on an existing site
func (s *EquipmentService) Create(ctx context.Context, in EquipmentInput) (*models.Equipment, error) {
	in = normalizeEquipmentInput(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	e := &models.Equipment{
		ID:            utils.GenerateID(),
		SiteID:        in.SiteID,
		Name:          in.Name,
		EquipmentType: in.EquipmentType,
		Model:         in.Model,
		Manufacturer:  in.Manufacturer,
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.equipment.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns equipment filtered by site and/or type
func (s *EquipmentService) List(ctx context.Context, siteID, equipmentType string, limit int) ([]*models.Equipment, error) {
	return s.equipment.List(ctx, strings.TrimSpace(siteID), strings.TrimSpace(equipmentType), clampLimit(limit))
}

// ListBySite returns the equipment of a site, or a NotFoundError for an unknown site
func (s *EquipmentService) ListBySite(ctx context.Context, siteID string, limit int) ([]*models.Equipment, error) {
	if _, err := s.sites.FindByID(ctx, siteID); err != nil {
		return nil, err
	}
	return s.equipment.List(ctx, siteID, "", clampLimit(limit))
}

// Get returns equipment or a NotFoundError
func (s *EquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	return s.equipment.FindByID(ctx, id)
}

// Update replaces the writable fields of equipment
func (s *EquipmentService) Update(ctx context.Context, id string, in EquipmentInput) (*models.Equipment, error) {
	in = normalizeEquipmentInput(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	e, err := s.equipment.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.SiteID = in.SiteID
	e.Name = in.Name
	e.EquipmentType = in.EquipmentType
	e.Model = in.Model
	e.Manufacturer = in.Manufacturer
	e.Status = in.Status
	e.UpdatedAt = s.now()

	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes equipment
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	return s.equipment.Delete(ctx, id)
}

func (s *EquipmentService) validate(ctx context.Context, in EquipmentInput) error {
	if in.Name == "" {
		return appErrors.NewValidationError("name", "name is required")
	}
	if in.EquipmentType == "" {
		return appErrors.NewValidationError("equipmentType", "equipmentType is required")
	}
	if err := validateStatus(in.Status); err != nil {
		return err
	}
	if in.SiteID == "" {
		return appErrors.NewValidationError("siteId", "siteId is required")
	}
	if _, err := s.sites.FindByID(ctx, in.SiteID); err != nil {
		if appErrors.IsNotFound(err) {
			return appErrors.NewValidationError("siteId", "site '"+in.SiteID+"' does not exist")
		}
		return err
	}
	return nil
}

func normalizeEquipmentInput(in EquipmentInput) EquipmentInput {
	in.SiteID = strings.TrimSpace(in.SiteID)
	in.Name = strings.TrimSpace(in.Name)
	in.EquipmentType = strings.TrimSpace(in.EquipmentType)
	in.Model = optionalString(in.Model)
	in.Manufacturer = optionalString(in.Manufacturer)
	if in.Status == "" {
		in.Status = constants.StatusActive
	}
	return in
}

// optionalString trims s and maps blank values to nil
func optionalString(s *string) *string {
	v := utils.TrimOrEmpty(s)
	if v == "" {
		return nil
	}
	return &v
}
