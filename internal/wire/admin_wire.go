package wire

import (
	"mess-booking/internal/adaptor"
	"mess-booking/pkg/middleware"
	"mess-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings - List/filter all bookings
		r.Get("/bookings", adminHandler.ListBookings)

		// GET /api/admin/statistics - Aggregate booking statistics
		r.Get("/statistics", adminHandler.Statistics)

		// GET /api/admin/users - List all users
		r.Get("/users", adminHandler.ListUsers)

		// PATCH /api/admin/bookings/{id}/status - Manual status override
		r.Patch("/bookings/{id}/status", adminHandler.UpdateBookingStatus)

		// PATCH /api/admin/users/{id}/role - Change a user's role
		r.Patch("/users/{id}/role", adminHandler.UpdateUserRole)
	})
}
