package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
)

// EquipmentHandler serves /api/equipment
type EquipmentHandler struct {
	equipment EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler
func NewEquipmentHandler(equipment EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// List handles GET /api/equipment?siteId=&equipmentType=&limit=
func (h *EquipmentHandler) List(c *gin.Context) {
	limit, ok := QueryLimit(c)
	if !ok {
		return
	}
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.equipment.List(c.Request.Context(), c.Query("siteId"), c.Query("equipmentType"), limit)
	})
}

// Get handles GET /api/equipment/:id
func (h *EquipmentHandler) Get(c *gin.Context) {
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.equipment.Get(c.Request.Context(), c.Param("id"))
	})
}

// Create handles POST /api/equipment
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req services.EquipmentInput
	HandleCreateEnvelope(c, "data", "Equipment created", &req, func() (interface{}, error) {
		return h.equipment.Create(c.Request.Context(), req)
	})
}

// Update handles PUT /api/equipment/:id
func (h *EquipmentHandler) Update(c *gin.Context) {
	var req services.EquipmentInput
	HandleUpdateEnvelope(c, "data", "Equipment updated", &req, func() (interface{}, error) {
		return h.equipment.Update(c.Request.Context(), c.Param("id"), req)
	})
}

// Delete handles DELETE /api/equipment/:id
func (h *EquipmentHandler) Delete(c *gin.Context) {
	HandleDeleteEnvelope(c, "Equipment deleted", func() error {
		return h.equipment.Delete(c.Request.Context(), c.Param("id"))
	})
}
