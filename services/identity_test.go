package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

func newIdentity(t *testing.T) (*IdentityService, *database.MemoryUserRepository) {
	t.Helper()
	users := database.NewMemoryUserRepository()
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	return NewIdentityService(users, tokens, bcrypt.MinCost, helpers.NewStubClock(epoch), helpers.NopLogger()), users
}

func TestRegisterThenLogin(t *testing.T) {
	svc, users := newIdentity(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.SignupRequest{Name: "Asha", Email: "Asha@Example.com", Password: "pw-123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.Token == "" || reg.User.Email != "asha@example.com" {
		t.Fatalf("Register() = %+v", reg)
	}

	stored, err := users.FindByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if stored.Password == "pw-123" {
		t.Fatal("password stored in clear")
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "pw-123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Fatalf("login id %s != register id %s", login.User.ID, reg.User.ID)
	}

	uid, err := svc.Verify(login.Token)
	if err != nil || uid != reg.User.ID {
		t.Fatalf("Verify() = %q, %v", uid, err)
	}

	profile, err := svc.Profile(ctx, uid)
	if err != nil || profile.Name != "Asha" {
		t.Fatalf("Profile() = %+v, %v", profile, err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newIdentity(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.SignupRequest{Name: "A", Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.Register(ctx, models.SignupRequest{Name: "B", Email: "A@example.com", Password: "y"})
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("second Register() error = %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newIdentity(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, models.SignupRequest{Name: "A", Email: "a@example.com", Password: "right"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "right"}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Login(unknown) error = %v", err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "wrong"}); !errors.Is(err, models.ErrInvalidCredential) {
		t.Fatalf("Login(wrong password) error = %v", err)
	}
}
