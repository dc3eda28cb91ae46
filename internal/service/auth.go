package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) token(user *models.User) (string, error) {
	exp := time.Now().Add(tokens.AccessTTL)
	return tokens.SignAccessToken(user.ID, user.IsAdmin, s.JWTSecret, exp)
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password required", ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, "", fmt.Errorf("%w: invalid email", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: pwHash,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, "", err
	}

	tok, err := s.token(user)
	if err != nil {
		return nil, "", err
	}

	l.Info("user_registered", "user_id", user.ID)
	return user, tok, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if req.Email == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	tok, err := s.token(user)
	if err != nil {
		return nil, "", err
	}

	l.Info("user_logged_in", "user_id", user.ID)
	return user, tok, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req transport.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		taken, err := s.Repo.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		user.Email = email
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", ErrValidation)
		}
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
