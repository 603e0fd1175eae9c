package services

import (
	"context"

	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/pkg/logger"
)

// LoginService turns an identity-provider assertion into a session. It owns
// no state of its own; it composes the verifier, the user directory and the
// token issuer.
type LoginService struct {
	verifier IdentityVerifier
	users    *UserService
	tokens   *TokenService
}

func NewLoginService(verifier IdentityVerifier, users *UserService, tokens *TokenService) *LoginService {
	return &LoginService{verifier: verifier, users: users, tokens: tokens}
}

// Login verifies the assertion, resolves (and if needed links) the local
// account, and mints an access token plus a fresh refresh-token record.
// Accounts are never created here; an unknown verified email is rejected.
func (s *LoginService) Login(ctx context.Context, rawIDToken, clientIP string) (accessToken string, refresh *models.RefreshToken, err error) {
	assertion, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		// The cause (malformed, wrong audience, expired, bad signature) is
		// logged but not distinguished to the caller.
		logger.Info().Err(err).Msg("login: assertion verification failed")
		return "", nil, ErrInvalidAssertion
	}
	if !assertion.EmailVerified {
		logger.Info().Str("email", assertion.Email).Msg("login: email not verified")
		return "", nil, ErrInvalidAssertion
	}

	user, err := s.users.FindByGoogleID(assertion.Subject)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user, err = s.users.FindByEmail(assertion.Email)
		if err != nil {
			return "", nil, err
		}
		if user == nil {
			logger.Info().Str("email", assertion.Email).Msg("login: no account for verified email")
			return "", nil, ErrUnknownIdentity
		}

		// First login: link the provider subject and display name. This is
		// the one self-healing mutation permitted on the login path.
		if err := s.users.LinkGoogleAccount(user, assertion.Subject, assertion.Name); err != nil {
			return "", nil, err
		}
		logger.Info().Uint("user_id", user.ID).Msg("login: linked provider account on first login")
	}

	if !user.Active {
		logger.Info().Uint("user_id", user.ID).Msg("login: account inactive")
		return "", nil, ErrInactiveIdentity
	}
	if clientIP == "" {
		return "", nil, ErrMissingClientContext
	}

	accessToken, err = s.tokens.IssueAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	refresh, err = s.tokens.IssueRefreshToken(user, clientIP)
	if err != nil {
		return "", nil, err
	}

	return accessToken, refresh, nil
}
