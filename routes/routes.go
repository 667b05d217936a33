package routes

import (
	"net/http"
	"time"

	"medivault/handlers"
	"medivault/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router needs.
type Handlers struct {
	User         *handlers.UserHandler
	Subscription *handlers.SubscriptionHandler
	Medication   *handlers.MedicationHandler
	Document     *handlers.DocumentHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/users")
	{
		api.POST("/register", h.User.RegisterHandler)
		api.POST("/login", h.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", h.User.GetProfileHandler)
		api.PATCH("/me", h.User.UpdateProfileHandler)
		api.DELETE("/me", h.User.DeleteAccountHandler)
		api.POST("/logout", h.User.LogoutHandler)
	}
}

// RegisterSubscriptionRoutes registers push-subscription endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/subscriptions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", h.Subscription.RegisterSubscriptionHandler)
		api.GET("", h.Subscription.ListSubscriptionsHandler)
		api.DELETE("", h.Subscription.RemoveSubscriptionHandler)
	}
}

// RegisterMedicationRoutes registers medication and reminder endpoints.
func RegisterMedicationRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/medications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", h.Medication.CreateMedicationHandler)
		api.GET("", h.Medication.ListMedicationsHandler)
		api.GET("/:id", h.Medication.GetMedicationHandler)
		api.PATCH("/:id", h.Medication.UpdateMedicationHandler)
		api.DELETE("/:id", h.Medication.DeleteMedicationHandler)
		api.GET("/:id/reminders", h.Medication.ListRemindersHandler)
	}

	reminders := r.Group("/api/reminders")
	{
		reminders.Use(middleware.JWTAuthMiddleware())
		reminders.GET("/due", h.Medication.ListDueRemindersHandler)
	}
}

// RegisterDocumentRoutes registers health-document endpoints.
func RegisterDocumentRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/documents")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", h.Document.UploadDocumentHandler)
		api.GET("", h.Document.ListDocumentsHandler)
		api.GET("/:id/url", h.Document.GetDownloadURLHandler)
		api.DELETE("/:id", h.Document.DeleteDocumentHandler)
		api.POST("/:id/extract", h.Document.ExtractMedicationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediVault"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, h)
	RegisterSubscriptionRoutes(r, h)
	RegisterMedicationRoutes(r, h)
	RegisterDocumentRoutes(r, h)
}
