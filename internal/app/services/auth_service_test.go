package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/auth"
)

type fakeUserReader struct {
	users map[string]*models.User
}

func (f *fakeUserReader) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func newTestAuthService(t *testing.T, users ...*models.User) *AuthService {
	t.Helper()
	byEmail := make(map[string]*models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "sekolahku.test",
	})
	return NewAuthService(&fakeUserReader{users: byEmail}, jwtService, zerolog.Nop())
}

func testStaffUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:           7,
		Email:        "guru@sekolahku.id",
		PasswordHash: hash,
		FullName:     "Ibu Guru",
		RoleType:     models.RoleStaff,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := testStaffUser(t, "rahasia-sekali")
	svc := newTestAuthService(t, user)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Guru@Sekolahku.ID",
		Password: "rahasia-sekali",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if resp.ExpiresIn <= 0 {
		t.Errorf("ExpiresIn = %d, want > 0", resp.ExpiresIn)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Errorf("User = %+v, want email %q", resp.User, user.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, testStaffUser(t, "rahasia-sekali"))

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "guru@sekolahku.id",
		Password: "salah-total",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, testStaffUser(t, "rahasia-sekali"))

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "tidak-ada@sekolahku.id",
		Password: "rahasia-sekali",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := testStaffUser(t, "rahasia-sekali")
	user.IsActive = false
	svc := newTestAuthService(t, user)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "guru@sekolahku.id",
		Password: "rahasia-sekali",
	})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}
