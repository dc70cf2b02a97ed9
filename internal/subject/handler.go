package subject

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SubjectHandler handles HTTP requests for subjects.
type SubjectHandler struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewSubjectHandler(repo Repository, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

type SubjectRequest struct {
	Name       string `json:"name" validate:"required,max=150"`
	Code       string `json:"code" validate:"required,max=20"`
	Department string `json:"department" validate:"required,max=100"`
	Semester   int    `json:"semester" validate:"min=1,max=8"`
}

func (h *SubjectHandler) bind(c echo.Context) (*SubjectRequest, error) {
	var req SubjectRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("Invalid request")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Department = strings.TrimSpace(req.Department)
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *SubjectHandler) fail(c echo.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Subject not found"})
	}
	h.logger.Error(op, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to " + op})
}

func (h *SubjectHandler) List(c echo.Context) error {
	f := Filter{Department: c.QueryParam("department")}
	if s := c.QueryParam("semester"); s != "" {
		semester, err := strconv.Atoi(s)
		if err != nil || semester < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid semester"})
		}
		f.Semester = semester
	}
	subjects, err := h.repo.Find(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, "list subjects", err)
	}
	return c.JSON(http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid subject ID"})
	}
	s, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "get subject", err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SubjectHandler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	now := h.now()
	s := &Subject{
		Name:       req.Name,
		Code:       req.Code,
		Department: req.Department,
		Semester:   req.Semester,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.Create(c.Request().Context(), s); err != nil {
		return h.fail(c, "create subject", err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SubjectHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid subject ID"})
	}
	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()
	s, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return h.fail(c, "update subject", err)
	}
	s.Name = req.Name
	s.Code = req.Code
	s.Department = req.Department
	s.Semester = req.Semester
	s.UpdatedAt = h.now()
	if err := h.repo.Update(ctx, s); err != nil {
		return h.fail(c, "update subject", err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SubjectHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid subject ID"})
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "delete subject", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subject deleted successfully"})
}
