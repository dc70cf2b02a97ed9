package notification

import (
	"errors"
	"net/http"

	"SmartCampus/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service *NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(service *NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, logger: logger}
}

// CreateNotificationRequest is the body of POST /api/notifications.
type CreateNotificationRequest struct {
	RecipientType  RecipientType  `json:"recipientType" validate:"required"`
	RecipientID    string         `json:"recipientId" validate:"omitempty,mongodb"`
	RecipientModel RecipientModel `json:"recipientModel"`
	Title          string         `json:"title" validate:"required,max=200"`
	Message        string         `json:"message" validate:"required,max=5000"`
	Type           Type           `json:"type"`
	Link           string         `json:"link" validate:"omitempty,max=500"`
}

func (h *NotificationHandler) caller(c echo.Context) (Caller, bool) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return Caller{}, false
	}
	id, err := claims.CallerID()
	if err != nil {
		return Caller{}, false
	}
	return Caller{ID: id, Role: claims.Role}, true
}

// List returns the caller's latest notifications and unread count.
func (h *NotificationHandler) List(c echo.Context) error {
	caller, ok := h.caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	feed, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		h.logger.Error("list notifications", zap.Error(err), zap.String("caller", caller.ID.Hex()))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notifications"})
	}
	return c.JSON(http.StatusOK, feed)
}

// MarkRead marks the notification in the path as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification ID"})
	}
	n, err := h.service.MarkRead(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Notification not found"})
		}
		h.logger.Error("mark notification read", zap.Error(err), zap.String("id", id.Hex()))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update notification"})
	}
	return c.JSON(http.StatusOK, n)
}

// MarkAllRead marks every unread notification addressed to the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	caller, ok := h.caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if _, err := h.service.MarkAllRead(c.Request().Context(), caller); err != nil {
		h.logger.Error("mark all notifications read", zap.Error(err), zap.String("caller", caller.ID.Hex()))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update notifications"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// Create lets admin staff send a notification.
func (h *NotificationHandler) Create(c echo.Context) error {
	caller, ok := h.caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	n := &Notification{
		RecipientType:  req.RecipientType,
		RecipientModel: req.RecipientModel,
		Title:          req.Title,
		Message:        req.Message,
		Type:           req.Type,
		Link:           req.Link,
	}
	if req.RecipientID != "" {
		id, err := primitive.ObjectIDFromHex(req.RecipientID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recipient ID"})
		}
		n.RecipientID = &id
	}

	if err := h.service.Create(c.Request().Context(), caller, n); err != nil {
		if errors.Is(err, ErrInvalidRecipient) || errors.Is(err, ErrInvalidType) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("create notification", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create notification"})
	}
	return c.JSON(http.StatusCreated, n)
}
