package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slack-notifier/application/dto"
	"github.com/alexmorbo/slack-notifier/domain/recipient"
)

type RouteManager interface {
	Put(ctx context.Context, name string, input dto.RouteInput) (*dto.RouteOutput, error)
	Get(ctx context.Context, name string) (*dto.RouteOutput, error)
	Delete(ctx context.Context, name string) error
}

type RouteHandler struct {
	routes RouteManager
}

func NewRouteHandler(routes RouteManager) *RouteHandler {
	return &RouteHandler{routes: routes}
}

func (h *RouteHandler) Put(c *gin.Context) {
	var input dto.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := h.routes.Put(c.Request.Context(), c.Param("recipient"), input)
	if err != nil {
		writeRouteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteHandler) Get(c *gin.Context) {
	out, err := h.routes.Get(c.Request.Context(), c.Param("recipient"))
	if err != nil {
		writeRouteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routes.Delete(c.Request.Context(), c.Param("recipient")); err != nil {
		writeRouteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeRouteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, recipient.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
