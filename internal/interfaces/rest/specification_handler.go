package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	"github.com/Andtit4/site-database-sub001/pkg/errors"
)

// SpecificationHandler serves one specification kind. The equipment and
// site routes share it and differ only in the type field name.
type SpecificationHandler struct {
	svc  SpecificationService
	kind schema.SpecKind
}

// NewSpecificationHandler creates a handler for the given kind
func NewSpecificationHandler(svc SpecificationService, kind schema.SpecKind) *SpecificationHandler {
	return &SpecificationHandler{svc: svc, kind: kind}
}

// CreateSpecificationRequest is the POST body. The type field of the other
// kind is rejected.
type CreateSpecificationRequest struct {
	EquipmentType string                    `json:"equipmentType"`
	SiteType      string                    `json:"siteType"`
	Columns       []schema.ColumnDefinition `json:"columns"`
}

func (r CreateSpecificationRequest) typeKey(kind schema.SpecKind) string {
	if kind == schema.KindSite {
		return r.SiteType
	}
	return r.EquipmentType
}

func (r CreateSpecificationRequest) validateKind(kind schema.SpecKind) error {
	stray, other := r.SiteType, schema.KindSite
	if kind == schema.KindSite {
		stray, other = r.EquipmentType, schema.KindEquipment
	}
	if stray != "" {
		return errors.NewValidationError(other.TypeField(),
			fmt.Sprintf("not accepted for %s, use %s", kind.Resource(), kind.TypeField()))
	}
	return nil
}

// UpdateSpecificationRequest is the PUT body
type UpdateSpecificationRequest struct {
	Columns []schema.ColumnDefinition `json:"columns"`
}

// Register mounts the routes on group. Mutations go through mutate.
func (h *SpecificationHandler) Register(group *gin.RouterGroup, mutate ...gin.HandlerFunc) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", withGuards(mutate, h.Create)...)
	group.PUT("/:id", withGuards(mutate, h.Update)...)
	group.DELETE("/:id", withGuards(mutate, h.Delete)...)
}

// List handles GET /
func (h *SpecificationHandler) List(c *gin.Context) {
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		specs, err := h.svc.FindAll(c.Request.Context(), h.kind)
		if err != nil {
			return nil, err
		}
		views := make([]map[string]interface{}, 0, len(specs))
		for _, spec := range specs {
			views = append(views, spec.MarshalView())
		}
		return views, nil
	})
}

// Get handles GET /:id
func (h *SpecificationHandler) Get(c *gin.Context) {
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		spec, err := h.svc.FindOne(c.Request.Context(), h.kind, c.Param("id"))
		if err != nil {
			return nil, err
		}
		return spec.MarshalView(), nil
	})
}

// Create handles POST /
func (h *SpecificationHandler) Create(c *gin.Context) {
	var req CreateSpecificationRequest
	HandleCreateEnvelope(c, "data", fmt.Sprintf("%s created", h.kind.Resource()), &req, func() (interface{}, error) {
		if err := req.validateKind(h.kind); err != nil {
			return nil, err
		}
		spec, err := h.svc.Create(c.Request.Context(), h.kind, req.typeKey(h.kind), req.Columns)
		if err != nil {
			return nil, err
		}
		return spec.MarshalView(), nil
	})
}

// Update handles PUT /:id. The generated table is recreated, so the
// response reports how many rows were discarded.
func (h *SpecificationHandler) Update(c *gin.Context) {
	var req UpdateSpecificationRequest
	if !BindJSONStrict(c, &req) {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), h.kind, c.Param("id"), req.Columns)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		constants.FieldMessage: fmt.Sprintf("%s updated", h.kind.Resource()),
		"data":                 viewOf(result.Specification),
		"tableRecreated":       result.TableRecreated,
		"droppedRows":          result.DroppedRows,
	})
}

// Delete handles DELETE /:id
func (h *SpecificationHandler) Delete(c *gin.Context) {
	HandleDeleteEnvelope(c, fmt.Sprintf("%s deleted", h.kind.Resource()), func() error {
		return h.svc.Remove(c.Request.Context(), h.kind, c.Param("id"))
	})
}

func viewOf(spec *models.Specification) map[string]interface{} {
	if spec == nil {
		return nil
	}
	return spec.MarshalView()
}

func withGuards(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}
