package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
)

// SiteHandler serves /api/sites
type SiteHandler struct {
	sites     SiteService
	equipment EquipmentService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(sites SiteService, equipment EquipmentService) *SiteHandler {
	return &SiteHandler{sites: sites, equipment: equipment}
}

// List handles GET /api/sites?siteType=&limit=
func (h *SiteHandler) List(c *gin.Context) {
	limit, ok := QueryLimit(c)
	if !ok {
		return
	}
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.sites.List(c.Request.Context(), c.Query("siteType"), limit)
	})
}

// Get handles GET /api/sites/:id
func (h *SiteHandler) Get(c *gin.Context) {
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.sites.Get(c.Request.Context(), c.Param("id"))
	})
}

// ListEquipment handles GET /api/sites/:id/equipment
func (h *SiteHandler) ListEquipment(c *gin.Context) {
	limit, ok := QueryLimit(c)
	if !ok {
		return
	}
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.equipment.ListBySite(c.Request.Context(), c.Param("id"), limit)
	})
}

// Create handles POST /api/sites
func (h *SiteHandler) Create(c *gin.Context) {
	var req services.SiteInput
	HandleCreateEnvelope(c, "data", "Site created", &req, func() (interface{}, error) {
		return h.sites.Create(c.Request.Context(), req)
	})
}

// Update handles PUT /api/sites/:id
func (h *SiteHandler) Update(c *gin.Context) {
	var req services.SiteInput
	HandleUpdateEnvelope(c, "data", "Site updated", &req, func() (interface{}, error) {
		return h.sites.Update(c.Request.Context(), c.Param("id"), req)
	})
}

// Delete handles DELETE /api/sites/:id. Equipment and specification rows
// go with it through ON DELETE CASCADE.
func (h *SiteHandler) Delete(c *gin.Context) {
	HandleDeleteEnvelope(c, "Site deleted", func() error {
		return h.sites.Delete(c.Request.Context(), c.Param("id"))
	})
}
