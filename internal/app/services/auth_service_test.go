package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/onboarding"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	stored.IsActive = true
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	now := time.Now()
	if u, ok := f.users[userID]; ok {
		u.LastLoginAt = &now
	}
	return nil
}

type fakeStudentCreator struct {
	profiles map[int64]*models.Student
	nextID   int64
}

func newFakeStudentCreator() *fakeStudentCreator {
	return &fakeStudentCreator{profiles: map[int64]*models.Student{}, nextID: 1}
}

func (f *fakeStudentCreator) CreateForUser(_ context.Context, userID int64) (int64, error) {
	id := f.nextID
	f.nextID++
	f.profiles[userID] = &models.Student{
		ID:               id,
		UserID:           userID,
		CompletionStatus: models.CompletionIncomplete,
	}
	return id, nil
}

func (f *fakeStudentCreator) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeTokenStore) Create(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeTokenStore) GetByValue(_ context.Context, token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if t.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.Revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeStudentCreator, *fakeTokenStore) {
	users := newFakeUserStore()
	students := newFakeStudentCreator()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "unipath-test",
	})
	return NewAuthService(users, students, tokens, jwtService), users, students, tokens
}

func registerStudent(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     "aysel@example.com",
		Password:  "correct-horse",
		FirstName: "Aysel",
		LastName:  "Mammadova",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return resp
}

func TestRegisterCreatesStudentProfile(t *testing.T) {
	svc, _, students, _ := newTestAuthService()
	resp := registerStudent(t, svc)

	if resp.User.Role != string(models.RoleStudent) {
		t.Errorf("Role = %q, want STUDENT by default", resp.User.Role)
	}
	if _, err := students.GetByUserID(context.Background(), resp.User.ID); err != nil {
		t.Errorf("expected student profile for new user: %v", err)
	}
	if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
		t.Error("expected a full token pair on registration")
	}
}

func TestRegisterAgentSkipsStudentProfile(t *testing.T) {
	svc, _, students, _ := newTestAuthService()
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "correct-horse",
		FirstName: "Kamran",
		LastName:  "Aliyev",
		RoleType:  models.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := students.GetByUserID(context.Background(), resp.User.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("agents must not get a student profile, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerStudent(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "aysel@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()
	resp := registerStudent(t, svc)
	old := resp.Token.RefreshToken

	refreshed, err := svc.Refresh(context.Background(), old)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.Token.RefreshToken == old {
		t.Error("refresh must issue a new refresh token")
	}
	if !tokens.tokens[old].Revoked {
		t.Error("the presented refresh token must be revoked")
	}

	// The old token cannot be used again.
	if _, err := svc.Refresh(context.Background(), old); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("second use: err = %v, want ErrTokenRevoked", err)
	}
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()
	resp := registerStudent(t, svc)

	if err := svc.Logout(context.Background(), resp.User.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	for _, tok := range tokens.tokens {
		if tok.UserID == resp.User.ID && !tok.Revoked {
			t.Error("expected every token revoked after logout")
		}
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     "odd@example.com",
		Password:  "correct-horse",
		FirstName: "Odd",
		LastName:  "Role",
		RoleType:  models.RoleType("SUPERVISOR"),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestLandingRoutes(t *testing.T) {
	svc, _, students, _ := newTestAuthService()
	resp := registerStudent(t, svc)
	userID := resp.User.ID

	tests := []struct {
		status models.CompletionStatus
		want   string
	}{
		{models.CompletionIncomplete, onboarding.RoutePersonalWizard},
		{models.CompletionPartial, onboarding.RoutePersonalWizard},
		{models.CompletionComplete, onboarding.RouteDashboard},
	}
	for _, tt := range tests {
		students.profiles[userID].CompletionStatus = tt.status
		landing, err := svc.Landing(context.Background(), userID)
		if err != nil {
			t.Fatalf("Landing(%s): %v", tt.status, err)
		}
		if landing.Route != tt.want {
			t.Errorf("Landing(%s) = %q, want %q", tt.status, landing.Route, tt.want)
		}
	}

	// A student without a profile row starts at the beginning.
	delete(students.profiles, userID)
	landing, err := svc.Landing(context.Background(), userID)
	if err != nil {
		t.Fatalf("Landing without profile: %v", err)
	}
	if landing.Route != onboarding.RoutePersonalWizard {
		t.Errorf("Route = %q, want %q", landing.Route, onboarding.RoutePersonalWizard)
	}
}

func TestLandingAgentGoesToDashboard(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "correct-horse",
		FirstName: "Kamran",
		LastName:  "Aliyev",
		RoleType:  models.RoleAgent,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	landing, err := svc.Landing(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if landing.Route != onboarding.RouteDashboard {
		t.Errorf("Route = %q, want %q", landing.Route, onboarding.RouteDashboard)
	}
}
