package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/auth"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/security"
)

// Service handles account registration and login, issuing the access
// tokens the booking and schedule surfaces require.
type Service struct {
	users         repository.UserRepository
	professionals repository.ProfessionalRepository
	hasher        security.PasswordHasher
	jwt           auth.JWTService
}

func NewService(
	users repository.UserRepository,
	professionals repository.ProfessionalRepository,
	hasher security.PasswordHasher,
	jwt auth.JWTService,
) *Service {
	return &Service{
		users:         users,
		professionals: professionals,
		hasher:        hasher,
		jwt:           jwt,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Validation("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := auth.Role(req.Role)
	if role == "" {
		role = auth.RoleClient
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Professional accounts also get their catalog row, keyed by the
	// same id, so they can publish a schedule and be booked.
	if user.Role == auth.RoleProfessional {
		professional := &model.Professional{
			Base:   model.Base{ID: user.ID},
			Name:   user.Name,
			Active: true,
		}
		if err := s.professionals.Create(ctx, professional); err != nil {
			return nil, fmt.Errorf("failed to create professional profile: %w", err)
		}
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// ValidateToken verifies a bearer token, used by the auth middleware.
func (s *Service) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	return s.jwt.ValidateToken(token)
}
