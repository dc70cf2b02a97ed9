package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"SmartCampus/internal/auth"
	"SmartCampus/internal/config"
	"SmartCampus/pkg/validate"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepository struct {
	mu     sync.Mutex
	admins []*Admin
}

func (r *fakeRepository) Create(_ context.Context, a *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == a.Email || (a.FirebaseUID != "" && existing.FirebaseUID == a.FirebaseUID) {
			return ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	cp := *a
	r.admins = append(r.admins, &cp)
	return nil
}

func (r *fakeRepository) find(match func(*Admin) bool) (*Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if match(a) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Admin, error) {
	return r.find(func(a *Admin) bool { return a.ID == id })
}

func (r *fakeRepository) FindByEmail(_ context.Context, email string) (*Admin, error) {
	return r.find(func(a *Admin) bool { return a.Email == email })
}

func (r *fakeRepository) FindByRole(_ context.Context, role Role) (*Admin, error) {
	return r.find(func(a *Admin) bool { return a.Role == role })
}

func (r *fakeRepository) List(_ context.Context) ([]*Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Admin(nil), r.admins...), nil
}

var signer = auth.NewSigner([]byte("test-secret"), time.Hour)

func setup(t *testing.T) (*Service, *fakeRepository) {
	t.Helper()
	repo := &fakeRepository{}
	return NewService(repo, signer), repo
}

func TestService_ProvisionSingleSuperAdmin(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	first, err := svc.Provision(ctx, ProvisionInput{Name: "Principal", Email: " Principal@SPI.gov.bd ", Password: "password1", Role: RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, "principal@spi.gov.bd", first.Email)
	assert.NotEqual(t, "password1", first.PasswordHash)

	_, err = svc.Provision(ctx, ProvisionInput{Name: "Other", Email: "other@spi.gov.bd", Password: "password2", Role: RoleSuperAdmin})
	assert.ErrorIs(t, err, ErrSuperAdminExists)

	_, err = svc.Provision(ctx, ProvisionInput{Name: "Head CST", Email: "cst@spi.gov.bd", Password: "password3", Role: RoleDepartmentAdmin, Department: "Computer"})
	require.NoError(t, err)
	assert.Len(t, repo.admins, 2)
}

func TestService_ProvisionRejects(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProvisionInput
	}{
		{name: "bad role", in: ProvisionInput{Name: "x", Email: "x@spi.gov.bd", Password: "password1", Role: "teacher"}},
		{name: "no email", in: ProvisionInput{Name: "x", Password: "password1", Role: RoleDepartmentAdmin}},
		{name: "short password", in: ProvisionInput{Name: "x", Email: "x@spi.gov.bd", Password: "short", Role: RoleDepartmentAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Provision(ctx, tt.in)
			assert.Error(t, err)
		})
	}

	_, err := svc.Provision(ctx, ProvisionInput{Name: "A", Email: "dup@spi.gov.bd", Password: "password1", Role: RoleDepartmentAdmin})
	require.NoError(t, err)
	_, err = svc.Provision(ctx, ProvisionInput{Name: "B", Email: "DUP@spi.gov.bd", Password: "password1", Role: RoleDepartmentAdmin})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestService_Login(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	created, err := svc.Provision(ctx, ProvisionInput{Name: "Head", Email: "head@spi.gov.bd", Password: "password1", Role: RoleDepartmentAdmin})
	require.NoError(t, err)

	a, token, err := svc.Login(ctx, "HEAD@spi.gov.bd", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, a.ID)

	claims, err := signer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.Equal(t, created.ID.Hex(), claims.Subject)

	_, _, err = svc.Login(ctx, "head@spi.gov.bd", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@spi.gov.bd", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminHandler_LoginLogout(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Provision(context.Background(), ProvisionInput{Name: "Principal", Email: "p@spi.gov.bd", Password: "password1", Role: RoleSuperAdmin})
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validate.New()
	h := NewAdminHandler(svc, &config.Config{JWTTTL: time.Hour}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"p@spi.gov.bd","password":"password1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"super_admin"`)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, auth.SessionCookie)
	require.Contains(t, cookies, auth.TokenCookie)
	assert.Equal(t, "true", cookies[auth.SessionCookie].Value)
	assert.True(t, cookies[auth.TokenCookie].HttpOnly)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"p@spi.gov.bd","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	for _, c := range rec.Result().Cookies() {
		assert.True(t, c.MaxAge < 0, c.Name)
	}
}
