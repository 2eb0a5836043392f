package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	// Appointment lifecycle endpoints.
	ListAppointments         gin.HandlerFunc
	RefreshAppointments      gin.HandlerFunc
	CancelAppointment        gin.HandlerFunc
	RescheduleAppointment    gin.HandlerFunc
	ModifyAppointmentService gin.HandlerFunc
	GetBookingPolicy         gin.HandlerFunc

	// Wallet endpoints.
	GetWallet     gin.HandlerFunc
	RefreshWallet gin.HandlerFunc

	// Favorites endpoints.
	GetFavorites   gin.HandlerFunc
	ToggleFavorite gin.HandlerFunc
	ClearFavorites gin.HandlerFunc

	// Session teardown.
	SignOut gin.HandlerFunc
}
