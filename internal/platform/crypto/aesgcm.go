package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var errCiphertextTooShort = errors.New("ciphertext too short")

// AESGCM encrypts client contact details at rest. Output is
// base64(nonce || ciphertext); empty input passes through unchanged so
// blank contacts stay blank in storage.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM expects a hex-encoded 32-byte key.
func NewAESGCM(keyHex string) (*AESGCM, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("decode contact key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("contact key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCM{aead: aead}, nil
}

func (a *AESGCM) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, a.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := a.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (a *AESGCM) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode contact ciphertext: %w", err)
	}
	if len(raw) < a.aead.NonceSize() {
		return "", errCiphertextTooShort
	}
	nonce, sealed := raw[:a.aead.NonceSize()], raw[a.aead.NonceSize():]
	opened, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("open contact ciphertext: %w", err)
	}
	return string(opened), nil
}

// Plaintext is the no-op encryptor used when no contact key is configured.
type Plaintext struct{}

func (Plaintext) Encrypt(value string) (string, error) { return value, nil }

func (Plaintext) Decrypt(value string) (string, error) { return value, nil }
