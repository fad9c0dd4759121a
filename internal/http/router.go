package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intconfig "cruisebooking/internal/config"
	h "cruisebooking/internal/http/handlers"
	"cruisebooking/internal/http/middleware"
	"cruisebooking/internal/services"
	"cruisebooking/internal/store"
	"cruisebooking/internal/upstream"
)

func NewRouter(env intconfig.Env, drafts store.DraftStore, client *upstream.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	wizardSvc := services.WizardService{Store: drafts, Ref: client, Booking: client}

	system := h.SystemHandler{Client: client}
	auth := h.AuthHandler{Client: client, Secret: secret, AdminPasswordHash: env.AdminPasswordHash}
	reference := h.ReferenceHandler{Client: client, Wizard: wizardSvc}
	wizard := h.WizardHandler{Wizard: wizardSvc, Docs: services.DocsService{Wizard: wizardSvc}}
	admin := h.AdminHandler{Client: client}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/upstream-check", system.UpstreamCheck)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/admin", auth.AdminLogin)
		authGroup.GET("/me", middleware.SessionRequired(secret), auth.Me)

		// Reference data for the booking screens.
		api.GET("/itineraries", reference.Itineraries)
		api.GET("/cabin-pricing", reference.CabinPricing)
		api.GET("/destinations/:route/cabin-options", reference.CabinOptions)

		// Booking wizard. Sessions are optional: guests can book too.
		booking := api.Group("/booking", middleware.SessionOptional(secret))
		booking.POST("/drafts", wizard.Open)
		booking.GET("/drafts/:id", wizard.Get)
		booking.PUT("/drafts/:id/trip", wizard.UpdateTrip)
		booking.PUT("/drafts/:id/passengers", wizard.UpdatePassengers)
		booking.PUT("/drafts/:id/payment", wizard.UpdatePayment)
		booking.POST("/drafts/:id/next", wizard.Next)
		booking.POST("/drafts/:id/back", wizard.Back)
		booking.POST("/drafts/:id/submit", wizard.Submit)
		booking.DELETE("/drafts/:id", wizard.Close)
		booking.GET("/drafts/:id/confirmation.pdf", wizard.ConfirmationPDF)

		// Customer enquiries (contact form).
		api.POST("/enquiries", admin.CreateEnquiry)

		// Admin dashboards: authenticated pass-through CRUD.
		adminGroup := api.Group("/admin", middleware.AdminOnly(secret))
		adminGroup.GET("/:resource", admin.Forward)
		adminGroup.POST("/:resource", admin.Forward)
		adminGroup.GET("/:resource/:id", admin.Forward)
		adminGroup.PUT("/:resource/:id", admin.Forward)
		adminGroup.DELETE("/:resource/:id", admin.Forward)
	}

	return r
}
