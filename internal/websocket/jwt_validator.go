package websocket

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrEmailNotAllowed is returned when the token's email is not on the allow-list
var ErrEmailNotAllowed = errors.New("email not allowed")

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
}

// Validate implements validator.CustomClaims
func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator validates Auth0 JWT tokens for WebSocket connections
type Auth0JWTValidator struct {
	validator *validator.Validator
	allowed   map[string]struct{}
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, allowedEmails []string) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &Auth0JWTValidator{
		validator: jwtValidator,
		allowed:   allowed,
	}, nil
}

// ValidateToken validates a JWT token and returns the allow-listed owner email
func (v *Auth0JWTValidator) ValidateToken(token string) (string, error) {
	ctx := context.Background()

	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	customClaims, ok := validatedClaims.CustomClaims.(*CustomClaims)
	if !ok || customClaims.Email == "" {
		return "", ErrInvalidToken
	}

	return v.checkAllowed(customClaims.Email)
}

// checkAllowed lowercases the claimed email and matches it against the
// allow-list.
func (v *Auth0JWTValidator) checkAllowed(email string) (string, error) {
	email = strings.ToLower(email)
	if _, ok := v.allowed[email]; !ok {
		return "", ErrEmailNotAllowed
	}
	return email, nil
}
