package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shiftwise/backend/internal/models"
	"gorm.io/gorm"
)

// stubVerifier returns a canned assertion (or error) regardless of input.
type stubVerifier struct {
	assertion *IdentityAssertion
	err       error
}

func (s *stubVerifier) Verify(ctx context.Context, rawIDToken string) (*IdentityAssertion, error) {
	return s.assertion, s.err
}

func setupLoginService(t *testing.T, verifier IdentityVerifier) (*LoginService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	users := NewUserService(db)
	tokens := testTokenService(db)
	return NewLoginService(verifier, users, tokens), db
}

func TestLogin_RejectedAssertion(t *testing.T) {
	login, _ := setupLoginService(t, &stubVerifier{err: errors.New("bad signature")})

	if _, _, err := login.Login(context.Background(), "whatever", "10.0.0.1"); !errors.Is(err, ErrInvalidAssertion) {
		t.Errorf("Login() error = %v, expected ErrInvalidAssertion", err)
	}
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	login, db := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-1",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		EmailVerified: false,
	}})

	user := &models.User{Email: "jane@example.com", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, _, err := login.Login(context.Background(), "token", "10.0.0.1"); !errors.Is(err, ErrInvalidAssertion) {
		t.Errorf("Login() error = %v, expected ErrInvalidAssertion", err)
	}

	// An unverified assertion must not touch the account.
	var reloaded models.User
	db.First(&reloaded, user.ID)
	if reloaded.GoogleID != nil {
		t.Error("unverified assertion must not link the account")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	login, _ := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-1",
		Email:         "nobody@example.com",
		Name:          "Nobody",
		EmailVerified: true,
	}})

	if _, _, err := login.Login(context.Background(), "token", "10.0.0.1"); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("Login() error = %v, expected ErrUnknownIdentity", err)
	}
}

func TestLogin_LinksAccountOnFirstLogin(t *testing.T) {
	login, db := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-42",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		EmailVerified: true,
	}})

	// Provisioned by an admin: no name, no provider subject yet.
	user := &models.User{Email: "jane@example.com", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	access, refresh, err := login.Login(context.Background(), "token", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if access == "" {
		t.Error("Login() should mint an access token")
	}
	if refresh == nil || refresh.Token == "" {
		t.Fatal("Login() should persist a refresh token")
	}
	if refresh.UserID != user.ID {
		t.Errorf("refresh token UserID = %d, expected %d", refresh.UserID, user.ID)
	}
	if refresh.IPAddress != "10.0.0.1" {
		t.Errorf("refresh token IP = %q, expected the client address", refresh.IPAddress)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if reloaded.GoogleID == nil || *reloaded.GoogleID != "subject-42" {
		t.Errorf("GoogleID = %v, expected the provider subject to be linked", reloaded.GoogleID)
	}
	if reloaded.Name == nil || *reloaded.Name != "Jane Doe" {
		t.Errorf("Name = %v, expected the provider display name", reloaded.Name)
	}
}

func TestLogin_SecondLoginFindsBySubject(t *testing.T) {
	login, db := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-42",
		Email:         "changed@example.com", // provider email changed since linking
		Name:          "Jane Doe",
		EmailVerified: true,
	}})

	name := "Jane Doe"
	subject := "subject-42"
	user := &models.User{Email: "jane@example.com", Name: &name, GoogleID: &subject, Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, refresh, err := login.Login(context.Background(), "token", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if refresh.UserID != user.ID {
		t.Errorf("resolved user = %d, expected lookup by subject to win (%d)", refresh.UserID, user.ID)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	login, db := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-1",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		EmailVerified: true,
	}})

	user := &models.User{Email: "jane@example.com", Active: false}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, _, err := login.Login(context.Background(), "token", "10.0.0.1"); !errors.Is(err, ErrInactiveIdentity) {
		t.Errorf("Login() error = %v, expected ErrInactiveIdentity", err)
	}
}

func TestLogin_MissingClientAddress(t *testing.T) {
	login, db := setupLoginService(t, &stubVerifier{assertion: &IdentityAssertion{
		Subject:       "subject-1",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		EmailVerified: true,
	}})

	user := &models.User{Email: "jane@example.com", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, _, err := login.Login(context.Background(), "token", ""); !errors.Is(err, ErrMissingClientContext) {
		t.Errorf("Login() error = %v, expected ErrMissingClientContext", err)
	}
}
