package admin

import (
	"errors"
	"net/http"
	"time"

	"SmartCampus/internal/auth"
	"SmartCampus/internal/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service *Service
	logger  *zap.Logger
	ttl     time.Duration
	secure  bool
}

func NewAdminHandler(service *Service, cfg *config.Config, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger, ttl: cfg.JWTTTL, secure: cfg.IsProduction()}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Page paths the form variants redirect to.
const (
	LoginPage     = "/login"
	DashboardPage = "/dashboard"
)

type CreateAdminRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"max=30"`
	Image      string `json:"image" validate:"omitempty,url"`
}

func (h *AdminHandler) setSession(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	flag := "true"
	if maxAge < 0 {
		flag = ""
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    flag,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login authenticates an admin and starts a browser session.
func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	a, token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		h.logger.Error("admin login", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
	}
	h.setSession(c, token, int(h.ttl.Seconds()))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"role":  a.Role.TokenRole(),
		"user":  a,
	})
}

// LoginForm is Login for the HTML login page: it answers with redirects,
// back to the login page with an error code or on to the dashboard.
func (h *AdminHandler) LoginForm(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, LoginPage+"?error=invalid")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, LoginPage+"?error=invalid")
	}
	_, token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Redirect(http.StatusSeeOther, LoginPage+"?error=credentials")
		}
		h.logger.Error("admin form login", zap.Error(err))
		return c.Redirect(http.StatusSeeOther, LoginPage+"?error=failed")
	}
	h.setSession(c, token, int(h.ttl.Seconds()))
	return c.Redirect(http.StatusSeeOther, DashboardPage)
}

// LogoutForm clears the session cookies and returns to the login page.
func (h *AdminHandler) LogoutForm(c echo.Context) error {
	h.setSession(c, "", -1)
	return c.Redirect(http.StatusSeeOther, LoginPage)
}

// Logout clears the session cookies.
func (h *AdminHandler) Logout(c echo.Context) error {
	h.setSession(c, "", -1)
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the caller's profile. Non-admin callers get their token claims.
func (h *AdminHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if !claims.Role.IsAdmin() {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"_id":   claims.Subject,
			"role":  claims.Role,
			"email": claims.Email,
			"name":  claims.Name,
		})
	}
	id, err := claims.CallerID()
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	a, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Admin not found"})
		}
		h.logger.Error("load admin profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load profile"})
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		h.logger.Error("list admins", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list admins"})
	}
	return c.JSON(http.StatusOK, admins)
}

// Create provisions a department admin.
func (h *AdminHandler) Create(c echo.Context) error {
	var req CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	a, err := h.service.Provision(c.Request().Context(), ProvisionInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       RoleDepartmentAdmin,
		Department: req.Department,
		Phone:      req.Phone,
		Image:      req.Image,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
		}
		h.logger.Error("provision admin", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create admin"})
	}
	return c.JSON(http.StatusCreated, a)
}
