package contact

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"SmartCampus/internal/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Message is a submission of the public contact form.
type Message struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Service forwards contact messages to the institute's inbox.
type Service struct {
	mailer config.Mailer
	to     string
}

func NewService(mailer config.Mailer, cfg *config.Config) *Service {
	return &Service{mailer: mailer, to: cfg.Resend.Contact}
}

func (s *Service) Send(ctx context.Context, m Message) error {
	if s.to == "" {
		return fmt.Errorf("contact inbox not configured")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(m.Name), html.EscapeString(m.Email))
	if m.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(m.Phone))
	}
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(m.Message), "\n", "<br>"))
	return s.mailer.SendEmail(ctx, []string{s.to}, "[Contact] "+m.Subject, b.String())
}

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Submit(c echo.Context) error {
	var m Message
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := h.service.Send(c.Request().Context(), m); err != nil {
		h.logger.Error("send contact message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
