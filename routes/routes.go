package routes

import (
	"net/http"
	"time"

	"telecare/handlers"
	"telecare/middleware"
	"telecare/models"
	"telecare/signaling"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRendezVousRoutes registers the rendez-vous booking endpoints.
func RegisterRendezVousRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rendezvous")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.RendezVous.CreateHandler)
		api.GET("", hb.RendezVous.GetAllHandler)
		api.GET("/:id", hb.RendezVous.GetByIDHandler)
		api.GET("/medecin/:medecinId", hb.RendezVous.GetByMedecinHandler)
		api.GET("/patient/:patientId", hb.RendezVous.GetByPatientHandler)
		api.PUT("/:id", hb.RendezVous.UpdateHandler)
		api.PUT("/:id/confirmer", hb.RendezVous.ConfirmHandler)
		api.PUT("/:id/annuler", hb.RendezVous.CancelHandler)
		api.DELETE("/:id", hb.RendezVous.DeleteHandler)
	}
}

// RegisterConsultationRoutes registers the consultation endpoints.
func RegisterConsultationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/consultations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Consultation.CreateHandler)
		api.GET("", hb.Consultation.GetAllHandler)
		api.GET("/:id", hb.Consultation.GetByIDHandler)
		api.GET("/medecin/:medecinId", hb.Consultation.GetByMedecinHandler)
		api.GET("/patient/:patientId", hb.Consultation.GetByPatientHandler)
		api.GET("/statistics/medecin/:medecinId", middleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hb.Consultation.GetDailyStatsHandler)
		api.PUT("/:id", hb.Consultation.UpdateHandler)
		api.POST("/:id/documents", hb.Consultation.UploadDocumentHandler)
		api.DELETE("/:id", middleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hb.Consultation.DeleteHandler)
	}
}

// RegisterSessionRoutes registers the dual-identifier session endpoints:
// lifecycle, checkout and chat history.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.Session.GetHandler)
		api.POST("/:id/complete", hb.Session.CompleteHandler)
		api.POST("/:id/payment", hb.Session.InitiatePaymentHandler)
		api.POST("/:id/payment/confirm", hb.Session.ConfirmPaymentHandler)
		api.POST("/:id/messages", hb.Chat.PostMessageHandler)
		api.GET("/:id/messages", hb.Chat.ListMessagesHandler)
	}
	r.DELETE("/api/messages/:id", middleware.JWTAuthMiddleware(), hb.Chat.DeleteMessageHandler)
}

// RegisterPaiementRoutes registers the payment record endpoints.
func RegisterPaiementRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/paiements")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hb.Paiement.CreateHandler)
		api.GET("", hb.Paiement.GetAllHandler)
		api.GET("/:id", hb.Paiement.GetByIDHandler)
		api.GET("/consultation/:consultationId", hb.Paiement.GetByConsultationHandler)
		api.POST("/:id/refund", middleware.RequireRole(models.RoleMedecin, models.RoleAdmin), hb.Paiement.RefundHandler)
		api.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), hb.Paiement.DeleteHandler)
	}
}

// RegisterUserRoutes registers the profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(models.RoleAdmin), hb.User.CreateHandler)
		api.GET("/:id", hb.User.GetByIDHandler)
		api.PUT("/:id", hb.User.UpdateHandler)
		api.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), hb.User.DeleteHandler)
	}
}

// RegisterSignalingRoute registers the WebRTC signaling relay endpoint.
func RegisterSignalingRoute(r *gin.Engine, hub *signaling.Hub) {
	r.GET("/ws", signaling.ServeWS(hub))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, hub *signaling.Hub) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterRendezVousRoutes(r, hb)
	RegisterConsultationRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterPaiementRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterSignalingRoute(r, hub)
	RegisterHealthRoute(r)
}
