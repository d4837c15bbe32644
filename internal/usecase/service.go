package usecase

import (
	"mess-booking/internal/data/repository"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/ticket"
	"mess-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Booking BookingService
	Webhook WebhookService
	Admin   AdminService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gateway payment.Gateway,
	tickets ticket.Generator,
	log *zap.Logger,
) *Service {
	catalog := NewPriceCatalog(config.Price)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Booking: NewBookingService(repo, catalog, gateway, log),
		Webhook: NewWebhookService(repo, gateway, tickets, log),
		Admin:   NewAdminService(repo, log),
	}
}
