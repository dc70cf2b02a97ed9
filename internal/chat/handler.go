package chat

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Asker answers a chat message.
type Asker interface {
	Ask(ctx context.Context, message string, history []Turn) (string, error)
}

type Request struct {
	Message string `json:"message" validate:"required,max=4000"`
	History []Turn `json:"history" validate:"max=50,dive"`
}

type Handler struct {
	asker  Asker
	logger *zap.Logger
}

func NewHandler(asker Asker, logger *zap.Logger) *Handler {
	return &Handler{asker: asker, logger: logger}
}

func (h *Handler) Chat(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	reply, err := h.asker.Ask(c.Request().Context(), req.Message, req.History)
	if err != nil {
		h.logger.Error("chat", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "The assistant is unavailable right now"})
	}
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
