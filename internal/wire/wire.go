package wire

import (
	"net/http"

	"mess-booking/internal/adaptor"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/usecase"
	"mess-booking/pkg/middleware"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/ticket"
	"mess-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	gateway payment.Gateway,
	tickets ticket.Generator,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, gateway, tickets, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireBooking(r, handler.Booking, config, logger)
	wireWebhook(r, handler.Webhook)
	wireAdmin(r, handler.Admin, config, logger)

	// Ticket artifacts are static files keyed by ticket id
	ticketServer := http.StripPrefix("/tickets/", http.FileServer(http.Dir(config.Ticket.Dir)))
	r.Get("/tickets/*", ticketServer.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
