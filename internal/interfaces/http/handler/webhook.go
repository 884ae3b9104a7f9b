package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appordering "github.com/vendora/backend/internal/application/ordering"
)

// WebhookHandler receives storefront webhook deliveries. Responses are
// plain text: webhook senders retry on anything but a 2xx and ignore the
// body, so the envelope is not used here.
type WebhookHandler struct {
	ingestion *appordering.IngestionService
	logger    *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(ingestion *appordering.IngestionService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{ingestion: ingestion, logger: logger}
}

// OrderCreated handles POST /webhooks/orders/create
func (h *WebhookHandler) OrderCreated(c *gin.Context) {
	var payload appordering.OrderWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("webhook payload rejected", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error processing webhook")
		return
	}

	result, err := h.ingestion.Ingest(c.Request.Context(), &payload)
	if err != nil {
		h.logger.Error("order ingestion failed",
			zap.String("platform_order_id", payload.PlatformOrderID()),
			zap.Error(err),
		)
		c.String(http.StatusInternalServerError, "Error processing webhook")
		return
	}

	if result.AlreadyProcessed {
		c.String(http.StatusOK, "Order already processed")
		return
	}
	c.String(http.StatusOK, "Webhook processed successfully")
}
