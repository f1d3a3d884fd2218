package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/storefront/internal/pkg/models"
)

// InsecureDefaultSecret is the placeholder secret shipped in sample env files
const InsecureDefaultSecret = "your-secret-key"

// MinSecretLength is the shortest HMAC secret accepted for signing
const MinSecretLength = 32

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInsecureSecret = errors.New("insecure jwt secret")
)

// Claims carries the user identity inside a session token
type Claims struct {
	ID     string `json:"id"`
	Mobile string `json:"mobile"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates HS256 session tokens
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer, refusing empty, short or default secrets
func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	switch {
	case secret == "":
		return nil, fmt.Errorf("%w: secret is empty", ErrInsecureSecret)
	case secret == InsecureDefaultSecret:
		return nil, fmt.Errorf("%w: secret is the default placeholder", ErrInsecureSecret)
	case len(secret) < MinSecretLength:
		return nil, fmt.Errorf("%w: secret shorter than %d bytes", ErrInsecureSecret, MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// NewTokenIssuerFromConfig builds an issuer from the JWT config group
func NewTokenIssuerFromConfig(cfg *models.Config) (*TokenIssuer, error) {
	return NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Hour)
}

// SetNowFunc replaces the clock, used by tests to move past expiry
func (i *TokenIssuer) SetNowFunc(now func() time.Time) {
	i.now = now
}

// TTL returns the lifetime given to issued tokens
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the user and returns it with its expiry
func (i *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == "" {
		return "", time.Time{}, errors.New("cannot issue token without a user id")
	}

	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)

	claims := Claims{
		ID:     user.ID,
		Mobile: user.Mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Any failure yields ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	now := i.now()
	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	if !claims.VerifyIssuedAt(now.Add(time.Minute), false) {
		return nil, fmt.Errorf("%w: token used before issued", ErrInvalidToken)
	}
	if i.issuer != "" && !claims.VerifyIssuer(i.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}

	return claims, nil
}

// Decode reads the claims without checking the signature or expiry.
// Never use the result for authorization.
func (i *TokenIssuer) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
