package services

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/shiftwise/backend/internal/config"
)

// IdentityAssertion is the verified result of an identity-provider ID token.
type IdentityAssertion struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityVerifier verifies an opaque identity assertion from the upstream
// provider. Implementations are treated as a black box by the login flow.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*IdentityAssertion, error)
}

// OIDCVerifier verifies Google ID tokens against the issuer's published keys
// and the configured client-id audience.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, cfg *config.GoogleConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, err
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawIDToken string) (*IdentityAssertion, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	return &IdentityAssertion{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
	}, nil
}
