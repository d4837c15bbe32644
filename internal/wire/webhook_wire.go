package wire

import (
	"mess-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// POST /api/webhook - Payment gateway notifications. No user auth;
	// trust is the signature.
	r.Post("/api/webhook", webhookHandler.HandleNotification)
}
