package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"SmartCampus/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProvisionInput describes a new admin account.
type ProvisionInput struct {
	Name        string
	Email       string
	Password    string
	Role        Role
	Department  string
	Phone       string
	Image       string
	FirebaseUID string
}

type Service struct {
	repo   Repository
	signer *auth.Signer
	now    func() time.Time
}

func NewService(repo Repository, signer *auth.Signer) *Service {
	return &Service{repo: repo, signer: signer, now: func() time.Time { return time.Now().UTC() }}
}

// Provision creates an admin. Only one super admin may exist; this is
// checked by lookup, so two concurrent provisioning runs can still race.
func (s *Service) Provision(ctx context.Context, in ProvisionInput) (*Admin, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name and email are required")
	}
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if in.Role == RoleSuperAdmin {
		existing, err := s.repo.FindByRole(ctx, RoleSuperAdmin)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSuperAdminExists
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	a := &Admin{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		FirebaseUID:  in.FirebaseUID,
		Role:         in.Role,
		Department:   in.Department,
		Phone:        in.Phone,
		Image:        in.Image,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*Admin, string, error) {
	a, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPasswordHash(password, a.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.signer.GenerateToken(a.ID, a.Role.TokenRole(), a.Email, a.Name)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Admin, error) {
	return s.repo.List(ctx)
}
