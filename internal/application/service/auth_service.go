package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// AuthService handles back-office sign in
type AuthService struct {
	adminRepo  repository.AdminRepository
	jwtManager *utils.JWTManager
	clock      Clock
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repository.AdminRepository,
	jwtManager *utils.JWTManager,
	clock Clock,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtManager: jwtManager,
		clock:      clock,
		log:        log,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Admin       *entity.Admin
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates an admin and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, persistErr(s.log, "load admin", err)
	}
	if admin == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPassword(admin.Password, input.Password) {
		s.log.Info("failed login", zap.String("email", admin.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, persistErr(s.log, "issue token", err)
	}

	now := s.clock.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.log.Warn("failed to record last login", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	}
	admin.LastLoginAt = &now

	return &LoginOutput{
		Admin:       admin,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

// GetProfile returns the signed-in admin
func (s *AuthService) GetProfile(ctx context.Context, adminID uuid.UUID) (*entity.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, persistErr(s.log, "load admin", err)
	}
	if admin == nil {
		return nil, apperror.NewNotFoundError("Admin")
	}
	return admin, nil
}
