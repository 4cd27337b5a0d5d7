package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// KDF derives key-encryption keys from passphrases
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF creates a new KDF with a fresh random salt from the provider
func (p *Provider) NewKDF() (*KDF, error) {
	salt, err := p.GenerateSalt()
	if err != nil {
		return nil, err
	}

	return &KDF{
		Salt:       salt,
		Iterations: p.iterations(),
	}, nil
}

// DeriveKey derives a 256-bit key-encryption key from a passphrase.
// Deterministic for identical (passphrase, salt, iterations). An empty
// passphrase is accepted but yields a key only as strong as the salt;
// rejecting weak passphrases is the caller's responsibility.
func (k *KDF) DeriveKey(passphrase []byte) []byte {
	return pbkdf2.Key(passphrase, k.Salt, k.Iterations, KeySize, sha256.New)
}
