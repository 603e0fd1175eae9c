package services

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/internal/utils"
	"gorm.io/gorm"
)

// refreshTokenBytes is the entropy of the opaque refresh-token value.
const refreshTokenBytes = 64

// TokenService mints credentials: stateless signed access tokens and
// persisted refresh-token records. Issuance never mutates existing rows;
// revoking a predecessor during rotation is the SessionService's job.
type TokenService struct {
	db         *gorm.DB
	jwt        *utils.JWTManager
	refreshTTL time.Duration
}

func NewTokenService(db *gorm.DB, jwtManager *utils.JWTManager, authCfg *config.AuthConfig) *TokenService {
	days := authCfg.RefreshTokenDays
	if days <= 0 {
		days = 7
	}
	return &TokenService{
		db:         db,
		jwt:        jwtManager,
		refreshTTL: time.Duration(days) * 24 * time.Hour,
	}
}

// IssueAccessToken mints a signed access token for the user. A linked
// account must have a display name; a nil name is corrupted state, reported
// as ErrIncompleteIdentity rather than an unauthorized outcome.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	if user.Name == nil {
		return "", ErrIncompleteIdentity
	}
	return s.jwt.Generate(user.ID, *user.Name, user.RoleNames())
}

// IssueRefreshToken persists a fresh refresh-token record for the user.
// Value uniqueness is enforced by the store's unique index, not re-checked
// here.
func (s *TokenService) IssueRefreshToken(user *models.User, clientIP string) (*models.RefreshToken, error) {
	record, err := s.newRefreshRecord(user, clientIP)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// newRefreshRecord builds an unsaved refresh-token record. Rotation creates
// it inside its own transaction.
func (s *TokenService) newRefreshRecord(user *models.User, clientIP string) (*models.RefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	return &models.RefreshToken{
		Token:     base64.RawURLEncoding.EncodeToString(buf),
		UserID:    user.ID,
		IPAddress: clientIP,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}, nil
}
