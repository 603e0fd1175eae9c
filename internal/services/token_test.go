package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shiftwise/backend/internal/models"
)

func TestIssueRefreshToken_Persisted(t *testing.T) {
	db := setupTestDB(t)
	tokens := testTokenService(db)
	user := createTestUser(t, db, "issue@example.com", true)

	record, err := tokens.IssueRefreshToken(user, "10.0.0.1")
	if err != nil {
		t.Fatalf("IssueRefreshToken() error = %v", err)
	}
	if record.ID == 0 {
		t.Error("record should be persisted with an id")
	}
	// 64 random bytes, base64url without padding.
	if len(record.Token) != 86 {
		t.Errorf("token length = %d, expected 86", len(record.Token))
	}
	if record.Revoked() {
		t.Error("fresh token must not be revoked")
	}

	expected := time.Now().Add(7 * 24 * time.Hour)
	diff := record.ExpiresAt.Sub(expected)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry off by %v, expected ~7 days out", diff)
	}
}

func TestIssueRefreshToken_DistinctValues(t *testing.T) {
	db := setupTestDB(t)
	tokens := testTokenService(db)
	user := createTestUser(t, db, "distinct@example.com", true)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		record, err := tokens.IssueRefreshToken(user, "10.0.0.1")
		if err != nil {
			t.Fatalf("IssueRefreshToken() #%d error = %v", i, err)
		}
		if seen[record.Token] {
			t.Fatalf("token value repeated on issue #%d", i)
		}
		seen[record.Token] = true
	}
}

func TestIssueAccessToken_MissingName(t *testing.T) {
	db := setupTestDB(t)
	tokens := testTokenService(db)

	user := &models.User{Email: "noname@example.com", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, err := tokens.IssueAccessToken(user); !errors.Is(err, ErrIncompleteIdentity) {
		t.Errorf("IssueAccessToken() error = %v, expected ErrIncompleteIdentity", err)
	}
}
