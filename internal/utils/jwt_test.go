package utils

import (
	"testing"
	"time"

	"github.com/shiftwise/backend/internal/config"
)

func testManager() *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:        "test-secret-key-for-testing",
		Issuer:        "shiftwise-test",
		Audience:      "shiftwise-test-web",
		ExpireMinutes: 15,
	})
}

func TestGenerate(t *testing.T) {
	m := testManager()

	token, err := m.Generate(1, "Test User", []string{"admin"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}
	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestParse_RoundTrip(t *testing.T) {
	m := testManager()

	token, _ := m.Generate(42, "Jane Doe", []string{"admin", "planner"})

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("UserID = %d, expected 42", userID)
	}
	if claims.Name != "Jane Doe" {
		t.Errorf("Name = %q, expected %q", claims.Name, "Jane Doe")
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "admin" || claims.Roles[1] != "planner" {
		t.Errorf("Roles = %v, expected [admin planner]", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("jti should be set")
	}
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	m := testManager()

	token1, _ := m.Generate(1, "User", nil)
	token2, _ := m.Generate(1, "User", nil)

	claims1, _ := m.Parse(token1)
	claims2, _ := m.Parse(token2)

	if claims1.ID == claims2.ID {
		t.Error("each issued token should carry a fresh jti")
	}
}

func TestParse_InvalidToken(t *testing.T) {
	m := testManager()

	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		if _, err := m.Parse(token); err == nil {
			t.Errorf("Parse(%q) should return error", token)
		}
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m1 := testManager()
	m2 := NewJWTManager(&config.JWTConfig{
		Secret:        "different-secret",
		Issuer:        "shiftwise-test",
		Audience:      "shiftwise-test-web",
		ExpireMinutes: 15,
	})

	token, _ := m1.Generate(1, "User", nil)

	if _, err := m2.Parse(token); err == nil {
		t.Error("Parse should fail with wrong secret")
	}
}

func TestParse_WrongAudience(t *testing.T) {
	m1 := testManager()
	m2 := NewJWTManager(&config.JWTConfig{
		Secret:        "test-secret-key-for-testing",
		Issuer:        "shiftwise-test",
		Audience:      "some-other-service",
		ExpireMinutes: 15,
	})

	token, _ := m1.Generate(1, "User", nil)

	if _, err := m2.Parse(token); err == nil {
		t.Error("Parse should reject a token minted for another audience")
	}
}

func TestGenerate_Expiration(t *testing.T) {
	m := testManager()

	token, _ := m.Generate(1, "User", nil)
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(15 * time.Minute)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	m := NewJWTManager(&config.JWTConfig{Secret: "s", Issuer: "i", Audience: "a"})
	if m.ttl != 15*time.Minute {
		t.Errorf("ttl = %v, expected 15m default", m.ttl)
	}
}
