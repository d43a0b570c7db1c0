package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slack-notifier/application/dto"
)

type NotificationSender interface {
	Execute(ctx context.Context, input dto.NotifyInput) (*dto.NotifyOutput, error)
}

type NotifyHandler struct {
	sendNotification NotificationSender
	logger           *slog.Logger
}

func NewNotifyHandler(sendNotification NotificationSender, logger *slog.Logger) *NotifyHandler {
	return &NotifyHandler{sendNotification: sendNotification, logger: logger}
}

func (h *NotifyHandler) Notify(c *gin.Context) {
	var input dto.NotifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Failed to parse notify payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	out, err := h.sendNotification.Execute(ctx, input)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, dto.ErrRouteUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route store unavailable"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}

	c.JSON(http.StatusOK, out)
}
