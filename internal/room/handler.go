package room

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RoomHandler handles HTTP requests for rooms.
type RoomHandler struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewRoomHandler(repo Repository, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// RoomRequest is the body of room create and update requests.
type RoomRequest struct {
	Number     string `json:"number" validate:"required,max=20"`
	Type       string `json:"type" validate:"max=50"`
	Capacity   int    `json:"capacity" validate:"gte=0,lte=1000"`
	Location   string `json:"location" validate:"required"`
	Department string `json:"department" validate:"max=100"`
}

func (h *RoomHandler) bind(c echo.Context) (*RoomRequest, error) {
	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("Invalid request")
	}
	req.Number = strings.TrimSpace(req.Number)
	req.Type = strings.TrimSpace(req.Type)
	if req.Type == "" {
		req.Type = DefaultType
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	if !slices.Contains(Locations, req.Location) {
		return nil, errors.New("location must be one of: " + strings.Join(Locations, ", "))
	}
	return &req, nil
}

func (h *RoomHandler) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
	case errors.Is(err, ErrDuplicate):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Room number already exists"})
	}
	h.logger.Error(op, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to " + op})
}

func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.repo.Find(c.Request().Context(), Filter{
		Location:   c.QueryParam("location"),
		Department: c.QueryParam("department"),
	})
	if err != nil {
		return h.fail(c, "list rooms", err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid room ID"})
	}
	room, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "get room", err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	now := h.now()
	room := &Room{
		Number:     req.Number,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Location:   req.Location,
		Department: req.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.Create(c.Request().Context(), room); err != nil {
		return h.fail(c, "create room", err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid room ID"})
	}
	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()
	room, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return h.fail(c, "update room", err)
	}
	room.Number = req.Number
	room.Type = req.Type
	room.Capacity = req.Capacity
	room.Location = req.Location
	room.Department = req.Department
	room.UpdatedAt = h.now()
	if err := h.repo.Update(ctx, room); err != nil {
		return h.fail(c, "update room", err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid room ID"})
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "delete room", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Room deleted successfully"})
}
