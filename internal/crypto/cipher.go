package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	ErrMalformedBlob  = errors.New("malformed encrypted blob")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrInvalidText    = errors.New("decrypted value is not valid text")
)

// Encryptor provides authenticated encryption of field values under a data
// key, producing self-contained base64 text blobs. Each call is
// independent; the encryptor keeps no state between calls and is safe for
// concurrent use.
type Encryptor struct {
	key  *DataKey
	rand io.Reader
}

// NewEncryptor creates a new encryptor with the given data key
func (p *Provider) NewEncryptor(key *DataKey) *Encryptor {
	return &Encryptor{
		key:  key,
		rand: p.rand(),
	}
}

func (e *Encryptor) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and encodes the result as
// base64(nonce || ciphertext || tag). Every call draws a fresh random
// nonce, so identical plaintexts produce different blobs.
func (e *Encryptor) Encrypt(plaintext []byte) (string, error) {
	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	// Generate random nonce
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Encrypt and authenticate, nonce prepended
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decodes and decrypts a blob produced by Encrypt. All-or-nothing:
// on tag mismatch no plaintext is returned and the call fails with
// ErrAuthFailed. Undecodable or structurally short blobs fail with
// ErrMalformedBlob.
func (e *Encryptor) Decrypt(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrMalformedBlob
	}

	if len(raw) < NonceSize+TagSize {
		return nil, ErrMalformedBlob
	}

	gcm, err := e.aead()
	if err != nil {
		return nil, err
	}

	// Decrypt and verify
	plaintext, err := gcm.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

// Destroy clears the encryptor's key from memory
func (e *Encryptor) Destroy() {
	e.key.Destroy()
}
