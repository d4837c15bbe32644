package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"mess-booking/internal/usecase"
	"mess-booking/pkg/payment"

	"go.uber.org/zap"
)

// Webhook payloads are small; anything larger is not a legitimate event.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleNotification handles POST /api/webhook. Trust is the signature,
// not user credentials. The response body follows the gateway contract:
// {"received": true} on acknowledgment.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.log.Warn("Failed to read webhook body", zap.Error(err))
		writeWebhookError(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := h.service.ProcessNotification(r.Context(), payload, signature); err != nil {
		if errors.Is(err, payment.ErrSignatureVerification) {
			writeWebhookError(w, http.StatusBadRequest, "signature verification failed")
			return
		}
		// Store failure: let the gateway redeliver.
		h.log.Error("Webhook processing failed", zap.Error(err))
		writeWebhookError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}

func writeWebhookError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
