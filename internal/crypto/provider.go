package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

const (
	SaltSize     = 16     // KDF salt size in bytes
	KeySize      = 32     // AES-256 key size
	NonceSize    = 12     // GCM nonce size
	TagSize      = 16     // GCM authentication tag size
	DefaultIters = 100000 // Default PBKDF2 iterations
)

// Provider supplies the cryptographic capabilities the rest of the package
// depends on. The zero value uses crypto/rand and DefaultIters. Tests may
// substitute a deterministic Rand to obtain fixed salts and nonces without
// touching process-wide state.
type Provider struct {
	Rand       io.Reader // random source, crypto/rand.Reader if nil
	Iterations int       // PBKDF2 iterations, DefaultIters if zero
}

func (p *Provider) rand() io.Reader {
	if p == nil || p.Rand == nil {
		return rand.Reader
	}
	return p.Rand
}

func (p *Provider) iterations() int {
	if p == nil || p.Iterations == 0 {
		return DefaultIters
	}
	return p.Iterations
}

// GenerateRandom generates n random bytes from the provider's source
func (p *Provider) GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(p.rand(), b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// GenerateSalt generates a fresh KDF salt
func (p *Provider) GenerateSalt() ([]byte, error) {
	salt, err := p.GenerateRandom(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
