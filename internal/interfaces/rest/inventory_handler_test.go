package rest_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/interfaces/rest"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

func inventoryRouter(sites *MockSiteService, equipment *MockEquipmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	sh := rest.NewSiteHandler(sites, equipment)
	eh := rest.NewEquipmentHandler(equipment)
	r.GET("/sites", sh.List)
	r.POST("/sites", sh.Create)
	r.GET("/sites/:id", sh.Get)
	r.PUT("/sites/:id", sh.Update)
	r.DELETE("/sites/:id", sh.Delete)
	r.GET("/sites/:id/equipment", sh.ListEquipment)
	r.GET("/equipment", eh.List)
	r.POST("/equipment", eh.Create)
	r.GET("/equipment/:id", eh.Get)
	r.PUT("/equipment/:id", eh.Update)
	r.DELETE("/equipment/:id", eh.Delete)
	return r
}

func TestSiteHandler(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		sites := new(MockSiteService)
		in := services.SiteInput{Name: "Dakar Nord", SiteType: "ROOFTOP", Status: "active"}
		sites.On("Create", mock.Anything, in).Return(&models.Site{ID: "site-1", Name: "Dakar Nord"}, nil).Once()

		w := doJSON(inventoryRouter(sites, new(MockEquipmentService)), http.MethodPost, "/sites",
			`{"name":"Dakar Nord","siteType":"ROOFTOP","status":"active"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "site-1", decodeBody(t, w)["data"].(map[string]interface{})["id"])
		sites.AssertExpectations(t)
	})

	t.Run("List passes filters", func(t *testing.T) {
		sites := new(MockSiteService)
		sites.On("List", mock.Anything, "ROOFTOP", 10).Return([]*models.Site{}, nil).Once()

		w := doJSON(inventoryRouter(sites, new(MockEquipmentService)), http.MethodGet, "/sites?siteType=ROOFTOP&limit=10", "")

		assert.Equal(t, http.StatusOK, w.Code)
		sites.AssertExpectations(t)
	})

	t.Run("Bad limit", func(t *testing.T) {
		sites := new(MockSiteService)

		w := doJSON(inventoryRouter(sites, new(MockEquipmentService)), http.MethodGet, "/sites?limit=-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		sites.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Update not found", func(t *testing.T) {
		sites := new(MockSiteService)
		sites.On("Update", mock.Anything, "nope", mock.Anything).Return(nil, appErrors.NewNotFoundError("Site", "nope")).Once()

		w := doJSON(inventoryRouter(sites, new(MockEquipmentService)), http.MethodPut, "/sites/nope", `{"name":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		sites := new(MockSiteService)
		sites.On("Delete", mock.Anything, "site-1").Return(nil).Once()

		w := doJSON(inventoryRouter(sites, new(MockEquipmentService)), http.MethodDelete, "/sites/site-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		sites.AssertExpectations(t)
	})

	t.Run("Equipment of a site", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("ListBySite", mock.Anything, "site-1", 0).
			Return([]*models.Equipment{{ID: "eq-1", SiteID: "site-1"}}, nil).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodGet, "/sites/site-1/equipment", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["data"], 1)
		equipment.AssertExpectations(t)
	})
}

func TestEquipmentHandler(t *testing.T) {
	t.Run("Create with unknown site", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("Create", mock.Anything, services.EquipmentInput{SiteID: "ghost", Name: "ANT-1", EquipmentType: "ANTENNE"}).
			Return(nil, appErrors.NewValidationError("siteId", "site 'ghost' does not exist")).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodPost, "/equipment",
			`{"siteId":"ghost","name":"ANT-1","equipmentType":"ANTENNE"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		equipment.AssertExpectations(t)
	})

	t.Run("List filters", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("List", mock.Anything, "site-1", "ANTENNE", 0).Return([]*models.Equipment{}, nil).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodGet, "/equipment?siteId=site-1&equipmentType=ANTENNE", "")

		assert.Equal(t, http.StatusOK, w.Code)
		equipment.AssertExpectations(t)
	})

	t.Run("Get", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("Get", mock.Anything, "eq-1").Return(&models.Equipment{ID: "eq-1"}, nil).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodGet, "/equipment/eq-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Update", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("Update", mock.Anything, "eq-1", services.EquipmentInput{SiteID: "site-1", Name: "ANT-2", EquipmentType: "ANTENNE", Status: "maintenance"}).
			Return(&models.Equipment{ID: "eq-1", Name: "ANT-2"}, nil).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodPut, "/equipment/eq-1",
			`{"siteId":"site-1","name":"ANT-2","equipmentType":"ANTENNE","status":"maintenance"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Equipment updated", decodeBody(t, w)["message"])
	})

	t.Run("Delete", func(t *testing.T) {
		equipment := new(MockEquipmentService)
		equipment.On("Delete", mock.Anything, "eq-1").Return(nil).Once()

		w := doJSON(inventoryRouter(new(MockSiteService), equipment), http.MethodDelete, "/equipment/eq-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		equipment.AssertExpectations(t)
	})
}
