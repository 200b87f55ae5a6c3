package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is the integrity capability of the codec: it wraps an opaque payload
// in a verifiable container and extracts it back out.
type Signer interface {
	Sign(payload string, now time.Time) (string, error)
	Verify(token string) (payload string, err error)
}

const signerIssuer = "tick"

// signedClaims is the JWT claim set used by the signer. The sealed payload
// rides in the "token" claim, mirroring the wire shape of issued tokens.
type signedClaims struct {
	jwt.RegisteredClaims
	Token string `json:"token"`
}

// HS256Signer signs payload containers as HS256 JWTs.
type HS256Signer struct {
	key []byte
}

// NewHS256Signer builds a Signer from an HMAC secret (>= 32 bytes).
func NewHS256Signer(key []byte) (*HS256Signer, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("%w: signing key must be at least 32 bytes", ErrConfig)
	}
	return &HS256Signer{key: key}, nil
}

// Sign wraps payload in a signed container.
func (s *HS256Signer) Sign(payload string, now time.Time) (string, error) {
	if s == nil || len(s.key) == 0 {
		return "", fmt.Errorf("%w: signer is not configured", ErrConfig)
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	claims := signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   signerIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Token: payload,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the container signature and returns the embedded payload.
// Any verification failure collapses to ErrInvalidToken.
func (s *HS256Signer) Verify(token string) (string, error) {
	if s == nil || len(s.key) == 0 {
		return "", fmt.Errorf("%w: signer is not configured", ErrConfig)
	}

	var parsed signedClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(signerIssuer),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if parsed.Token == "" {
		return "", ErrInvalidToken
	}
	return parsed.Token, nil
}
