package services

import (
	"errors"
	"time"

	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/pkg/logger"
	"gorm.io/gorm"
)

// SessionService drives the refresh-token state machine: Active is terminal
// once a token expires or is revoked, and rotation links each revoked token
// to its successor so every login session forms a singly-linked chain.
type SessionService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewSessionService(db *gorm.DB, tokens *TokenService) *SessionService {
	return &SessionService{db: db, tokens: tokens}
}

// ValidateForUse looks a token up by its opaque value and checks it is still
// usable. Expiry is checked independently of revocation. A revoked token
// showing up here is the reuse signal for a possibly stolen credential; it
// is logged but the rest of the chain is not cascaded (known gap).
func (s *SessionService) ValidateForUse(rawToken string) (*models.RefreshToken, error) {
	stored, err := s.findByToken(rawToken, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if stored.Expired(now) {
		logger.Info().Uint("token_id", stored.ID).Msg("expired refresh token presented")
		return nil, ErrTokenExpired
	}
	if stored.Revoked() {
		logger.Warn().
			Uint("token_id", stored.ID).
			Uint("user_id", stored.UserID).
			Str("ip", stored.IPAddress).
			Msg("revoked refresh token presented, possible credential reuse")
		return nil, ErrTokenRevoked
	}

	return stored, nil
}

// IssueAccess validates the refresh token and mints a new access token for
// its owner without rotating the refresh credential.
func (s *SessionService) IssueAccess(rawToken string) (string, error) {
	stored, err := s.ValidateForUse(rawToken)
	if err != nil {
		return "", err
	}

	user := stored.User
	if !user.Active {
		return "", ErrInactiveIdentity
	}
	return s.tokens.IssueAccessToken(&user)
}

// Rotate replaces a still-valid refresh token with a successor. The
// successor row is created and the predecessor revoked-and-linked in one
// transaction, with a conditional update (revoked_at IS NULL) so that of two
// concurrent rotations of the same token exactly one commits; the loser
// rolls back its successor and reports the token revoked.
func (s *SessionService) Rotate(rawToken, clientIP string) (accessToken string, next *models.RefreshToken, err error) {
	if clientIP == "" {
		return "", nil, ErrMissingClientContext
	}

	stored, err := s.ValidateForUse(rawToken)
	if err != nil {
		return "", nil, err
	}

	user := stored.User
	if !user.Active {
		return "", nil, ErrInactiveIdentity
	}

	accessToken, err = s.tokens.IssueAccessToken(&user)
	if err != nil {
		return "", nil, err
	}

	next, err = s.tokens.newRefreshRecord(&user, clientIP)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(next).Error; err != nil {
			return err
		}
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", stored.ID).
			Updates(map[string]interface{}{
				"revoked_at":           now,
				"replaced_by_token_id": next.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race against a concurrent rotation of the same value.
			return ErrTokenRevoked
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			logger.Warn().
				Uint("token_id", stored.ID).
				Uint("user_id", stored.UserID).
				Msg("concurrent rotation detected, rolling back successor")
		}
		return "", nil, err
	}

	return accessToken, next, nil
}

// Revoke unconditionally revokes a token on logout, even one that has
// already expired; revocation and expiry are orthogonal. The returned bool
// reports whether the token was already expired, as information rather than
// failure. Revocation is set-once: an already-revoked token keeps its
// original timestamp.
func (s *SessionService) Revoke(rawToken string) (wasExpired bool, err error) {
	stored, err := s.findByToken(rawToken, false)
	if err != nil {
		return false, err
	}

	if err := s.db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", stored.ID).
		Update("revoked_at", time.Now()).Error; err != nil {
		return false, err
	}

	return stored.Expired(time.Now()), nil
}

func (s *SessionService) findByToken(rawToken string, withUser bool) (*models.RefreshToken, error) {
	query := s.db
	if withUser {
		query = query.Preload("User").Preload("User.Roles")
	}

	var stored models.RefreshToken
	if err := query.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &stored, nil
}
