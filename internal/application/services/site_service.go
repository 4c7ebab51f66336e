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

// SiteInput is the writable part of a site
type SiteInput struct {
	Name      string   `json:"name"`
	SiteType  string   `json:"siteType"`
	Region    *string  `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    string   `json:"status"`
}

// SiteService manages sites
type SiteService struct {
	sites  ports.SiteStore
	events ports.EventPublisher
	now    func() time.Time
}

// NewSiteService creates a new SiteService
func NewSiteService(sites ports.SiteStore, bus ports.EventPublisher) *SiteService {
	return &SiteService{sites: sites, events: bus, now: time.Now}
}

// Create validates and stores a new site
func (s *SiteService) Create(ctx context.Context, in SiteInput) (*models.Site, error) {
	in = normalizeSiteInput(in)
	if err := validateSiteInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	site := &models.Site{
		ID:        utils.GenerateID(),
		Name:      in.Name,
		SiteType:  in.SiteType,
		Region:    in.Region,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sites.Insert(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// List returns sites, optionally of one site type
func (s *SiteService) List(ctx context.Context, siteType string, limit int) ([]*models.Site, error) {
	return s.sites.List(ctx, strings.TrimSpace(siteType), clampLimit(limit))
}

// Get returns a site or a NotFoundError
func (s *SiteService) Get(ctx context.Context, id string) (*models.Site, error) {
	return s.sites.FindByID(ctx, id)
}

// Update replaces the writable fields of a site
func (s *SiteService) Update(ctx context.Context, id string, in SiteInput) (*models.Site, error) {
	in = normalizeSiteInput(in)
	if err := validateSiteInput(in); err != nil {
		return nil, err
	}

	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	site.Name = in.Name
	site.SiteType = in.SiteType
	site.Region = in.Region
	site.Latitude = in.Latitude
	site.Longitude = in.Longitude
	site.Status = in.Status
	site.UpdatedAt = s.now()

	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// Delete removes a site. Its equipment and generated specification rows go with it.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sites.Delete(ctx, id); err != nil {
		return err
	}
	publishBestEffort(ctx, s.events, events.SiteDeleted, events.SitePayload{ID: site.ID, Name: site.Name})
	return nil
}

func normalizeSiteInput(in SiteInput) SiteInput {
	in.Name = strings.TrimSpace(in.Name)
	in.SiteType = strings.TrimSpace(in.SiteType)
	if in.Status == "" {
		in.Status = constants.StatusActive
	}
	in.Region = optionalString(in.Region)
	return in
}

func validateSiteInput(in SiteInput) error {
	if in.Name == "" {
		return appErrors.NewValidationError("name", "name is required")
	}
	if in.SiteType == "" {
		return appErrors.NewValidationError("siteType", "siteType is required")
	}
	if err := validateStatus(in.Status); err != nil {
		return err
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return appErrors.NewValidationError("latitude", "latitude must be between -90 and 90")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return appErrors.NewValidationError("longitude", "longitude must be between -180 and 180")
	}
	return nil
}

func validateStatus(status string) error {
	switch status {
	case constants.StatusActive, constants.StatusInactive, constants.StatusMaintenance:
		return nil
	}
	return appErrors.NewValidationError("status", fmt.Sprintf("status must be one of %s, %s, %s",
		constants.StatusActive, constants.StatusInactive, constants.StatusMaintenance))
}
