package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawlink/lawlink-api/internal/email"
	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	"github.com/lawlink/lawlink-api/pkg/auth"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/logger"
	"github.com/lawlink/lawlink-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, emailSvc email.Service, log *logger.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
		logger:   log,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.Validation("invalid role", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooWeak) || errors.Is(err, security.ErrPasswordTooLong) {
			return nil, apperrors.Validation(err.Error(), err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PhotoURL:     req.PhotoURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email already registered", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort: the account exists either way.
	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Name); err != nil {
		s.logger.Error(err, "failed to send welcome email", "user_id", user.ID.String())
	}

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, apperrors.Unauthenticated("invalid credentials", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthenticated("invalid credentials", err)
	}

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

// CurrentUser resolves the token claims back to a full user record.
func (s *Service) CurrentUser(ctx context.Context, claims *model.TokenClaims) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthenticated("account no longer exists", err)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// ValidateToken decodes and verifies a session token.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid token", err)
	}
	return claims, nil
}
