package token

import (
	"encoding/json"
	"strings"
	"time"
)

// PurposeAuthentication is the purpose claim stamped on login tokens.
const PurposeAuthentication = "authentication"

// Claims is the identity envelope carried inside a token.
type Claims struct {
	AccountID string `json:"id"`
	Purpose   string `json:"type"`
}

// Codec turns an identity claim into an opaque bearer string and back.
//
// The two capabilities are independent: the Cipher hides the claim contents,
// the Signer makes the container tamper-evident. Decode verifies the
// signature before any decryption is attempted.
type Codec struct {
	cipher Cipher
	signer Signer
}

// NewCodec builds a Codec from configuration, wiring the default AES-GCM
// cipher and HS256 signer.
func NewCodec(cfg Config) (*Codec, error) {
	c, err := NewAESGCMCipher(cfg.EncKey)
	if err != nil {
		return nil, err
	}
	s, err := NewHS256Signer(cfg.SignKey)
	if err != nil {
		return nil, err
	}
	return &Codec{cipher: c, signer: s}, nil
}

// NewCodecWith builds a Codec from explicit capabilities. Used by tests and
// by deployments that swap either primitive.
func NewCodecWith(cipher Cipher, signer Signer) *Codec {
	return &Codec{cipher: cipher, signer: signer}
}

// Issue encodes {id: accountID, type: purpose} into an opaque token string.
func (c *Codec) Issue(accountID, purpose string) (string, error) {
	accountID = strings.TrimSpace(accountID)
	purpose = strings.TrimSpace(purpose)
	if accountID == "" || purpose == "" {
		return "", ErrInvalidInput
	}

	plain, err := json.Marshal(Claims{AccountID: accountID, Purpose: purpose})
	if err != nil {
		return "", err
	}

	sealed, err := c.cipher.Seal(plain)
	if err != nil {
		return "", err
	}

	return c.signer.Sign(sealed, time.Now().UTC())
}

// Decode resolves an opaque token back to its claims.
// Every failure mode (bad signature, undecryptable payload, malformed JSON)
// collapses to ErrInvalidToken.
func (c *Codec) Decode(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	sealed, err := c.signer.Verify(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	plain, err := c.cipher.Open(sealed)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(plain, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.AccountID == "" || claims.Purpose == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
