package services

import (
	"context"
	"errors"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/onboarding"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/auth"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// userStore is the slice of the user repository the auth flow needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

type studentCreator interface {
	CreateForUser(ctx context.Context, userID int64) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

type tokenStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetByValue(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// AuthService implements registration, login and token lifecycle.
type AuthService struct {
	users      userStore
	students   studentCreator
	tokens     tokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users userStore, students studentCreator, tokens tokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		students:   students,
		tokens:     tokens,
		jwtService: jwtService,
	}
}

// Register creates a user account. Student accounts also get an empty
// profile row so onboarding has somewhere to write.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := req.RoleType
	if role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown role type")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  role,
	}
	userID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	user.IsActive = true

	if role == models.RoleStudent {
		if _, err := s.students.CreateForUser(ctx, userID); err != nil {
			logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create student profile for new user")
			return nil, err
		}
	}

	logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("User registered")
	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a fresh token pair
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.tokens.GetByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

// Landing resolves the client route a just-authenticated user should be
// sent to. Agents skip onboarding entirely.
func (s *AuthService) Landing(ctx context.Context, userID int64) (*dto.LandingResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return &dto.LandingResponse{Route: onboarding.RouteDashboard}, nil
	}

	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return &dto.LandingResponse{
				Route:            onboarding.RoutePersonalWizard,
				CompletionStatus: string(models.CompletionIncomplete),
			}, nil
		}
		return nil, err
	}

	return &dto.LandingResponse{
		Route:            onboarding.LandingRoute(student.CompletionStatus),
		CompletionStatus: string(student.CompletionStatus),
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.FromUser(user),
	}, nil
}
