package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/controllers"
	"cmdb-system/internal/repositories"
	"cmdb-system/internal/services"
	"cmdb-system/pkg/config"
)

// InitRouter wires repositories, services and controllers and registers
// every route on the given Echo instance.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	applicationRepo := repositories.NewApplicationRepository(dbConn)
	incidentRepo := repositories.NewIncidentRepository(dbConn, logger)
	closureCodeRepo := repositories.NewClosureCodeRepository(dbConn)
	catalogRepo := repositories.NewCatalogRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	applicationService := services.NewApplicationService(applicationRepo, logger)
	incidentService := services.NewIncidentService(incidentRepo, logger)
	recommendationService := services.NewRecommendationService(closureCodeRepo, cacheRepo, cfg.Recommendation, logger)
	closureCodeService := services.NewClosureCodeService(closureCodeRepo, logger)
	catalogService := services.NewCatalogService(catalogRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, logger)
	reportService := services.NewReportService(reportRepo, logger)

	applicationController := controllers.NewApplicationController(applicationService, logger)
	incidentController := controllers.NewIncidentController(incidentService, logger)
	closureCodeController := controllers.NewClosureCodeController(closureCodeService, recommendationService, logger)
	catalogController := controllers.NewCatalogController(catalogService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	// Dashboard page and its assets.
	e.Static("/static", "web/static")
	e.File("/dashboard", "web/templates/dashboard.html")
	e.File("/", "web/templates/dashboard.html")

	api := e.Group("/api")

	// Historical endpoints consumed by the dashboard client.
	api.GET("/dashboard/data", dashboardController.GetStats)
	api.GET("/codigos-cierre", closureCodeController.Lookup)

	runApplicationRoutes(api, applicationController, closureCodeController, catalogController)
	runIncidentRoutes(api, incidentController)
	runClosureCodeRoutes(api, closureCodeController)
	runCatalogRoutes(api, catalogController)

	api.GET("/reports/incidents", reportController.GetReport)
	api.POST("/recommendations/closure-code", closureCodeController.Recommend)
}

func runApplicationRoutes(
	api *echo.Group,
	c *controllers.ApplicationController,
	closureCodes *controllers.ClosureCodeController,
	catalogs *controllers.CatalogController,
) {
	group := api.Group("/applications")
	group.GET("", c.GetApplications)
	group.GET("/short", c.ListShort)
	group.GET("/:id", c.FindApplication)
	group.POST("", c.CreateApplication)
	group.PUT("/:id", c.UpdateApplication)
	group.DELETE("/:id", c.DeleteApplication)
	group.GET("/:id/closure-codes/recent", closureCodes.Recent)
	group.GET("/:id/components", catalogs.GetComponents)
}

func runIncidentRoutes(api *echo.Group, c *controllers.IncidentController) {
	group := api.Group("/incidents")
	group.GET("", c.GetIncidents)
	group.GET("/:id", c.FindIncident)
	group.POST("", c.CreateIncident)
	group.PUT("/:id", c.UpdateIncident)
	group.DELETE("/:id", c.DeleteIncident)
}

func runClosureCodeRoutes(api *echo.Group, c *controllers.ClosureCodeController) {
	group := api.Group("/closure-codes")
	group.GET("", c.GetClosureCodes)
	group.GET("/:id", c.FindClosureCode)
	group.POST("", c.CreateClosureCode)
	group.PUT("/:id", c.UpdateClosureCode)
	group.DELETE("/:id", c.DeleteClosureCode)
}

func runCatalogRoutes(api *echo.Group, c *controllers.CatalogController) {
	api.GET("/severities", c.GetSeverities)
	api.GET("/resolver-groups", c.GetResolverGroups)
}
