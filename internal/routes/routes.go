package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/config"
	"hospital-schemes-server/internal/handlers"
	"hospital-schemes-server/internal/metrics"
	"hospital-schemes-server/internal/middleware"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/utils"
)

// NewRouter builds the gin engine with middleware and every route.
// m may be nil, in which case /metrics is not served.
func NewRouter(s *store.Store, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, s, m)
	return router
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, s *store.Store, m *metrics.Metrics) {
	utils.RegisterValidators()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(s)
	schemeHandler := handlers.NewSchemeHandler(s)
	patientHandler := handlers.NewPatientHandler(s)
	enrollmentHandler := handlers.NewEnrollmentHandler(s)

	api := router.Group("/api/v1")
	{
		api.GET("/dashboard", dashboardHandler.GetDashboard)

		schemeRoutes := api.Group("/schemes")
		{
			schemeRoutes.GET("", schemeHandler.GetSchemes)
			schemeRoutes.POST("", schemeHandler.CreateScheme)
			schemeRoutes.GET("/:id", schemeHandler.GetSchemeByID)
			schemeRoutes.PUT("/:id", schemeHandler.UpdateScheme)
			schemeRoutes.DELETE("/:id", schemeHandler.DeleteScheme)
		}

		// POST accepts an optional enrollment block stored atomically with the patient
		patientRoutes := api.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
		}

		enrollmentRoutes := api.Group("/enrollments")
		{
			enrollmentRoutes.GET("", enrollmentHandler.GetEnrollments)
			enrollmentRoutes.POST("", enrollmentHandler.CreateEnrollment)
			enrollmentRoutes.GET("/:id", enrollmentHandler.GetEnrollmentByID)
			enrollmentRoutes.PUT("/:id", enrollmentHandler.UpdateEnrollment)
			enrollmentRoutes.DELETE("/:id", enrollmentHandler.DeleteEnrollment)
		}
	}

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Health check reports DOWN when the store cannot be reached
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
