package rest

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	tables ports.TableManager
	drift  DriftChecker
	specs  SpecificationIndex
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(tables ports.TableManager, drift DriftChecker, specs SpecificationIndex) *AdminHandler {
	return &AdminHandler{tables: tables, drift: drift, specs: specs}
}

// GetTable handles GET /api/admin/tables/:name and reports whether the
// table exists along with its physical columns and owning specification.
func (h *AdminHandler) GetTable(c *gin.Context) {
	name := c.Param("name")
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		if err := schema.ValidateTableName(name); err != nil {
			return nil, err
		}
		ctx := c.Request.Context()
		exists, err := h.tables.CheckTableExists(ctx, name)
		if err != nil {
			return nil, err
		}
		columns := []ports.PhysicalColumn{}
		if exists {
			if columns, err = h.tables.DescribeTable(ctx, name); err != nil {
				return nil, err
			}
		}
		owner, err := h.ownerOf(ctx, name)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"tableName":     name,
			"exists":        exists,
			"columns":       columns,
			"specification": owner,
		}, nil
	})
}

// GetSchemaDrift handles GET /api/admin/schema-drift
func (h *AdminHandler) GetSchemaDrift(c *gin.Context) {
	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		reports, err := h.drift.Check(c.Request.Context())
		if err != nil {
			return nil, err
		}
		drifted := 0
		for _, r := range reports {
			if !r.InSync() {
				drifted++
			}
		}
		out := map[string]interface{}{
			"total":   len(reports),
			"drifted": drifted,
			"reports": reports,
		}
		if _, at := h.drift.Last(); !at.IsZero() {
			out["lastScheduledRun"] = at.UTC().Format(time.RFC3339)
		}
		return out, nil
	})
}

// ownerOf finds the specification a generated table belongs to, if any
func (h *AdminHandler) ownerOf(ctx context.Context, tableName string) (map[string]interface{}, error) {
	if !constants.IsGeneratedTable(tableName) {
		return nil, nil
	}
	kind := schema.KindEquipment
	if strings.HasPrefix(tableName, constants.SiteSpecTablePrefix) {
		kind = schema.KindSite
	}

	byTable, err := h.specs.TablesFor(ctx, kind)
	if err != nil {
		return nil, err
	}
	return viewOf(byTable[tableName]), nil
}
