package routes

import (
	"github.com/gin-gonic/gin"

	"glowbook/handlers"
	"glowbook/middleware"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	api.Use(middleware.AccountMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", hb.ListAppointments)
			appointments.POST("/refresh", hb.RefreshAppointments)
			appointments.POST("/:appointmentID/cancel", hb.CancelAppointment)
			appointments.POST("/:appointmentID/reschedule", hb.RescheduleAppointment)
			appointments.PUT("/:appointmentID/service", hb.ModifyAppointmentService)
		}

		api.GET("/booking-policy", hb.GetBookingPolicy)

		wallet := api.Group("/wallet")
		{
			wallet.GET("", hb.GetWallet)
			wallet.POST("/refresh", hb.RefreshWallet)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", hb.GetFavorites)
			favorites.POST("/:serviceID/toggle", hb.ToggleFavorite)
			favorites.DELETE("", hb.ClearFavorites)
		}

		api.POST("/sign-out", hb.SignOut)
	}
}
