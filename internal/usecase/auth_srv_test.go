package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"

	"go.uber.org/zap"
)

func newAuthEnv(t *testing.T) (*repository.Repository, AuthService) {
	t.Helper()

	log := zap.NewNop()
	store, err := repository.NewFileReservationStore(filepath.Join(t.TempDir(), "reservations.json"), log)
	if err != nil {
		t.Fatal(err)
	}
	repo := &repository.Repository{
		Reservation: store,
		Session:     repository.NewMemorySessionRepository(log),
	}
	return repo, NewAuthService(repo, testConfig(), log)
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	reg := &request.RegisterRequest{
		Phone:           "010-1234-5678",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if err := svc.Register(ctx, reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	auth, err := svc.Login(ctx, &request.LoginRequest{Phone: reg.Phone, Password: reg.Password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.Token == "" {
		t.Error("login returned empty token")
	}
	if auth.Phone != reg.Phone {
		t.Errorf("login phone = %q, want %q", auth.Phone, reg.Phone)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"bad phone format", &request.RegisterRequest{Phone: "01012345678", Password: "secret1", ConfirmPassword: "secret1"}},
		{"foreign prefix", &request.RegisterRequest{Phone: "011-1234-5678", Password: "secret1", ConfirmPassword: "secret1"}},
		{"password mismatch", &request.RegisterRequest{Phone: "010-1234-5678", Password: "secret1", ConfirmPassword: "secret2"}},
		{"short password", &request.RegisterRequest{Phone: "010-1234-5678", Password: "abc", ConfirmPassword: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Register(ctx, tc.req); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	req := &request.RegisterRequest{Phone: "010-1234-5678", Password: "secret1", ConfirmPassword: "secret1"}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatal(err)
	}
	err := svc.Register(ctx, &request.RegisterRequest{Phone: "010-1234-5678", Password: "other99", ConfirmPassword: "other99"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	if err := svc.Register(ctx, &request.RegisterRequest{Phone: "010-1234-5678", Password: "secret1", ConfirmPassword: "secret1"}); err != nil {
		t.Fatal(err)
	}

	// Unknown phone and wrong password come back as the same error, so
	// a caller cannot probe which phones are registered.
	_, errUnknown := svc.Login(ctx, &request.LoginRequest{Phone: "010-0000-0000", Password: "secret1"})
	_, errWrongPw := svc.Login(ctx, &request.LoginRequest{Phone: "010-1234-5678", Password: "wrong"})
	for _, err := range []error{errUnknown, errWrongPw} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Error("unknown phone and wrong password produce distinguishable errors")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo, svc := newAuthEnv(t)
	ctx := context.Background()

	if err := svc.Register(ctx, &request.RegisterRequest{Phone: "010-1234-5678", Password: "secret1", ConfirmPassword: "secret1"}); err != nil {
		t.Fatal(err)
	}
	auth, err := svc.Login(ctx, &request.LoginRequest{Phone: "010-1234-5678", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	session, err := repo.Session.FindValidSession(ctx, auth.Token)
	if err != nil || session == nil {
		t.Fatalf("session missing right after login: %v", err)
	}

	if err := svc.Logout(ctx, auth.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	session, err = repo.Session.FindValidSession(ctx, auth.Token)
	if err != nil {
		t.Fatal(err)
	}
	if session != nil {
		t.Error("session still valid after logout")
	}
}

func TestPasswordNeverStoredInClear(t *testing.T) {
	repo, svc := newAuthEnv(t)
	ctx := context.Background()

	if err := svc.Register(ctx, &request.RegisterRequest{Phone: "010-1234-5678", Password: "secret1", ConfirmPassword: "secret1"}); err != nil {
		t.Fatal(err)
	}
	user, err := repo.Reservation.FindUser(ctx, "010-1234-5678")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(user.PasswordHash, "secret1") {
		t.Error("password hash contains the clear password")
	}
}
