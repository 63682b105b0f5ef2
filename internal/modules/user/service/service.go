package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/videohub/internal/entity"
	"anoa.com/videohub/internal/modules/user/dto"
	"anoa.com/videohub/internal/modules/user/repository"
	"anoa.com/videohub/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, error)
	Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AccessResponse, error)
	Logout(ctx context.Context, claims *Claims) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *TokenManager
	cost   int
}

func NewAuthService(repo repository.UserRepository, tokens *TokenManager) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error) {
	username := strings.TrimSpace(input.Username)

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("a user with that username already exists: %w", apperror.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a user with that username already exists: %w", apperror.ErrConflict)
		}
		return nil, err
	}

	return &dto.RegisterResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	access, err := s.tokens.Issue(user.ID, TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user.ID, TokenRefresh)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AccessResponse, error) {
	claims, err := s.tokens.Parse(ctx, input.Refresh, TokenRefresh)
	if err != nil {
		return nil, err
	}

	userID := uuid.MustParse(claims.Subject)
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	access, err := s.tokens.Issue(userID, TokenAccess)
	if err != nil {
		return nil, err
	}
	return &dto.AccessResponse{Access: access}, nil
}

func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	return s.tokens.Revoke(ctx, claims)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &dto.MeResponse{Username: user.Username}, nil
}
