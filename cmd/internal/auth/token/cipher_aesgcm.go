package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Cipher is the payload encryption capability of the codec.
// Implementations must be authenticated (tampered ciphertext fails Open).
type Cipher interface {
	Seal(plaintext []byte) (string, error)
	Open(sealed string) ([]byte, error)
}

// AESGCMCipher seals and opens claim payloads using AES-GCM.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCMCipher builds an AES-GCM cipher from a raw AES key.
// key must be a valid AES length (16/24/32 bytes).
func NewAESGCMCipher(key []byte) (*AESGCMCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts one plaintext payload and returns a base64-encoded blob.
func (c *AESGCMCipher) Seal(plaintext []byte) (string, error) {
	if c == nil || c.aead == nil {
		return "", fmt.Errorf("%w: cipher is not configured", ErrConfig)
	}

	// AES-GCM requires a unique nonce per encryption under the same key.
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, plaintext, nil)
	// Emitted as nonce || ciphertext, raw base64url for JWT claim embedding.
	payload := append(nonce, ciphertext...)
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Open decrypts one previously sealed blob.
func (c *AESGCMCipher) Open(sealed string) ([]byte, error) {
	if c == nil || c.aead == nil {
		return nil, fmt.Errorf("%w: cipher is not configured", ErrConfig)
	}

	payload, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrInvalidToken
	}

	nonceSize := c.aead.NonceSize()
	if len(payload) < nonceSize {
		return nil, ErrInvalidToken
	}
	// Payload format is nonce || ciphertext.
	nonce := payload[:nonceSize]
	ciphertext := payload[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return plaintext, nil
}
