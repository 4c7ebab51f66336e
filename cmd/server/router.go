package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/internal/application/services"
	"github.com/Andtit4/site-database-sub001/internal/config"
	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/internal/interfaces/middleware"
	"github.com/Andtit4/site-database-sub001/internal/interfaces/rest"
)

func newRouter(cfg *config.Config, svcMgr *services.ServiceManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.Cors(cfg.Server.CorsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"server": "golang",
		})
	})

	authHandler := rest.NewAuthHandler(svcMgr.Auth)
	equipmentSpecs := rest.NewSpecificationHandler(svcMgr.Specifications, schema.KindEquipment)
	siteSpecs := rest.NewSpecificationHandler(svcMgr.Specifications, schema.KindSite)
	siteHandler := rest.NewSiteHandler(svcMgr.Sites, svcMgr.Equipment)
	equipmentHandler := rest.NewEquipmentHandler(svcMgr.Equipment)
	notificationHandler := rest.NewNotificationHandler(svcMgr.Notifications)
	adminHandler := rest.NewAdminHandler(svcMgr.Tables, svcMgr.Reconciler, svcMgr.Specifications)

	requireAuth := middleware.RequireAuth(svcMgr.Auth)
	requireAdmin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", requireAuth, authHandler.GetMe)
		}

		equipmentSpecs.Register(api.Group("/specifications", requireAuth), requireAdmin)
		siteSpecs.Register(api.Group("/site-specifications", requireAuth), requireAdmin)

		sites := api.Group("/sites", requireAuth)
		{
			sites.GET("", siteHandler.List)
			sites.POST("", siteHandler.Create)
			sites.GET("/:id", siteHandler.Get)
			sites.PUT("/:id", siteHandler.Update)
			sites.DELETE("/:id", siteHandler.Delete)
			sites.GET("/:id/equipment", siteHandler.ListEquipment)
		}

		equipment := api.Group("/equipment", requireAuth)
		{
			equipment.GET("", equipmentHandler.List)
			equipment.POST("", equipmentHandler.Create)
			equipment.GET("/:id", equipmentHandler.Get)
			equipment.PUT("/:id", equipmentHandler.Update)
			equipment.DELETE("/:id", equipmentHandler.Delete)
		}

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkAsRead)
		}

		admin := api.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/tables/:name", adminHandler.GetTable)
			admin.GET("/schema-drift", adminHandler.GetSchemaDrift)
		}
	}

	return router
}
