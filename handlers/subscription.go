package handlers

import (
	"net/http"

	"medivault/services/user"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler exposes push-subscription endpoints.
type SubscriptionHandler struct {
	Service user.UserService
}

func NewSubscriptionHandler(svc user.UserService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: svc}
}

// RegisterSubscriptionHandler handles POST /api/subscriptions. The payload
// mirrors what the browser's PushManager hands out.
func (h *SubscriptionHandler) RegisterSubscriptionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	sub, err := h.Service.RegisterPushSubscription(userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth, c.GetHeader("User-Agent"))
	if err != nil {
		logger.Error("Failed to register push subscription", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListSubscriptionsHandler handles GET /api/subscriptions.
func (h *SubscriptionHandler) ListSubscriptionsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	subs, err := h.Service.GetPushSubscriptions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// RemoveSubscriptionHandler handles DELETE /api/subscriptions. Removing an
// endpoint that is already gone succeeds.
func (h *SubscriptionHandler) RemoveSubscriptionHandler(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetString("userID")
	if err := h.Service.RemovePushSubscription(userID, req.Endpoint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed"})
}
