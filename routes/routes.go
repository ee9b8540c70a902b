package routes

import (
	"net/http"
	"time"

	"conjunto/handlers"
	"conjunto/middleware"
	"conjunto/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Vehicle *handlers.VehicleHandler
	Receipt *handlers.ReceiptHandler
	Slot    *handlers.SlotHandler
	Admin   *handlers.AdminHandler
}

// RegisterVehicleRoutes registers the guard-post visitor vehicle endpoints.
func RegisterVehicleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/visitor-vehicles")
	{
		api.Use(middleware.JWTAuthMiddleware(middleware.RoleGuard, middleware.RoleAdmin))
		api.POST("/entry", hb.Vehicle.EntryHandler)
		api.POST("/checkout", hb.Vehicle.CheckoutHandler)
		api.GET("", hb.Vehicle.ListHandler)
		api.GET("/active", hb.Vehicle.ActiveHandler)
		api.GET("/today", hb.Vehicle.TodayHandler)
	}
}

// RegisterReceiptRoutes registers the parking receipt endpoints.
func RegisterReceiptRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/parking-receipts")
	{
		api.Use(middleware.JWTAuthMiddleware(middleware.RoleGuard, middleware.RoleAdmin))
		api.GET("", hb.Receipt.ListHandler)
		api.GET("/:id", hb.Receipt.GetHandler)
	}
}

// RegisterSlotRoutes registers the visitor slot registry endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/parking-slots")
	{
		api.GET("", middleware.JWTAuthMiddleware(middleware.RoleGuard, middleware.RoleAdmin), hb.Slot.ListHandler)
		api.POST("", middleware.JWTAuthMiddleware(middleware.RoleAdmin), hb.Slot.CreateHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(middleware.RoleAdmin))
		adminGroup.GET("/stats", hb.Admin.StatsHandler)
		adminGroup.GET("/vehicles/report", hb.Admin.ReportHandler)
		adminGroup.GET("/tariff", hb.Admin.GetTariffHandler)
		adminGroup.PUT("/tariff", hb.Admin.UpdateTariffHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterVehicleRoutes(r, hb)
	RegisterReceiptRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
