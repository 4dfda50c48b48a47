package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// phonePattern is the identity key format: 010-XXXX-XXXX.
var phonePattern = regexp.MustCompile(`^010-\d{4}-\d{4}$`)

// ErrInvalidCredentials keeps login failures indistinguishable between
// unknown phone and wrong password.
var ErrInvalidCredentials = errors.New("phone number or password does not match")

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository
	expiry time.Duration
	log    *zap.Logger
}

var _ AuthService = (*authService)(nil)

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		expiry: time.Duration(config.Session.ExpiryHours) * time.Hour,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrBadInput, utils.FormatValidationErrors(errs))
	}

	if !phonePattern.MatchString(req.Phone) {
		return fmt.Errorf("%w: phone number %q must match 010-XXXX-XXXX", ErrBadInput, req.Phone)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("process password: %w", err)
	}

	user := &entity.User{
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.repo.Reservation.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("phone number %s is already registered: %w", req.Phone, repository.ErrDuplicate)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("phone", req.Phone))
		return fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", zap.String("phone", req.Phone))
	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadInput, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.Reservation.FindUser(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("phone", req.Phone))
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &entity.Session{
		Token:     utils.GenerateSessionToken().String(),
		UserPhone: user.Phone,
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("phone", user.Phone))

	return &response.AuthResponse{
		Phone:     user.Phone,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.repo.Session.Revoke(ctx, token)
}
