package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/auth"
	"github.com/tutorlink/tutorlink/internal/pkg/email"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo        repositories.IUserRepository
	specialUserRepo repositories.ISpecialUserRepository
	tokenRepo       repositories.ITokenRepository
	revocation      repositories.IRevocationStore
	jwtService      *auth.JWTService
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	specialUserRepo repositories.ISpecialUserRepository,
	tokenRepo repositories.ITokenRepository,
	revocation repositories.IRevocationStore,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		specialUserRepo: specialUserRepo,
		tokenRepo:       tokenRepo,
		revocation:      revocation,
		jwtService:      jwtService,
		emailService:    emailService,
		logger:          logger,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}

	if !emailRegex.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}

	return nil
}

// validatePassword checks if a password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// resolveRole decides the role a registering user ends up with. An allow-list
// entry always wins over whatever the request asked for; privileged roles can
// only be obtained through the allow-list.
func (s *AuthService) resolveRole(ctx context.Context, emailAddr string, requested models.RoleType) (models.RoleType, error) {
	specialUser, err := s.specialUserRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return specialUser.RoleType, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return "", fmt.Errorf("error checking allow-list: %w", err)
	}

	if requested == "" {
		return models.RoleUser, nil
	}

	role := models.RoleType(strings.ToUpper(string(requested)))
	if !models.IsValidRole(role) {
		return "", apperrors.ErrInvalidRole
	}
	if role == models.RoleAdmin || role == models.RoleStaff {
		return "", apperrors.ErrInvalidRole
	}

	return role, nil
}

// Register creates a new user account and returns its first token pair
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	role, err := s.resolveRole(ctx, req.Email, req.RoleType)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  role,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	// Welcome email is best effort; registration never fails on SMTP trouble
	go func() {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	}()

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: tokens,
	}, nil
}

// RefreshToken rotates a refresh token into a fresh token pair. The old
// token is revoked in both the database and the denylist so it cannot be
// replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	revoked, err := s.revocation.IsRevoked(ctx, refreshToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Denylist check failed, falling back to database state")
	} else if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}
	// The denylist entry lives for the full refresh lifetime, an upper bound
	// on how long the revoked token could still look valid
	if err := s.revocation.Revoke(ctx, refreshToken, s.jwtService.RefreshTokenTTL()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to add rotated token to denylist")
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a single refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}

	_, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		// Already revoked or expired tokens make logout a no-op
		if errors.Is(err, apperrors.ErrTokenRevoked) || errors.Is(err, apperrors.ErrTokenExpired) {
			return nil
		}
		return err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return err
	}
	if err := s.revocation.Revoke(ctx, refreshToken, s.jwtService.RefreshTokenTTL()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to add token to denylist")
	}

	return nil
}

// LogoutAll revokes every refresh token a user holds
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// GetProfile retrieves the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// generateTokenResponse creates a token pair and stores the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
