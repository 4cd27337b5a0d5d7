package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"io"
)

// DataKey is an opaque handle to a 256-bit data-encryption key. Raw key
// bytes leave the handle only through Export, at the wrap boundary.
type DataKey struct {
	raw []byte
}

// GenerateDataKey produces a fresh random data-encryption key
func (p *Provider) GenerateDataKey() (*DataKey, error) {
	raw, err := p.GenerateRandom(KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}
	return &DataKey{raw: raw}, nil
}

// ImportDataKey creates a data key handle from raw exported bytes
func ImportDataKey(raw []byte) (*DataKey, error) {
	if len(raw) != KeySize {
		return nil, ErrInvalidKeySize
	}
	k := &DataKey{raw: make([]byte, KeySize)}
	copy(k.raw, raw)
	return k, nil
}

// Export returns a copy of the raw key bytes. The caller must ClearBytes
// the copy once it has been wrapped.
func (k *DataKey) Export() []byte {
	raw := make([]byte, len(k.raw))
	copy(raw, k.raw)
	return raw
}

// Destroy clears the key material from memory
func (k *DataKey) Destroy() {
	ClearBytes(k.raw)
}

// sealKEK builds the AEAD used to wrap data keys under a derived KEK
func sealKEK(kek []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// WrapDataKey seals a data key under a passphrase-derived KEK and encodes
// the record as base64(salt || nonce || sealed key). Salt and nonce are
// fresh on every call, so wrapping the same key twice yields two different
// records that both unwrap to the same key bytes. The KEK exists only for
// the duration of the call.
func (p *Provider) WrapDataKey(dek *DataKey, passphrase []byte) (string, error) {
	kdf, err := p.NewKDF()
	if err != nil {
		return "", err
	}

	kek := kdf.DeriveKey(passphrase)
	defer ClearBytes(kek)

	gcm, err := sealKEK(kek)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(p.rand(), nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	record := make([]byte, 0, SaltSize+NonceSize+KeySize+TagSize)
	record = append(record, kdf.Salt...)
	record = append(record, nonce...)
	record = gcm.Seal(record, nonce, dek.raw, nil)

	return base64.StdEncoding.EncodeToString(record), nil
}

// UnwrapDataKey decodes a wrapped key record, re-derives the KEK from the
// embedded salt and opens the sealed key. Fails with ErrAuthFailed if the
// passphrase is wrong or the record was tampered with, ErrMalformedBlob if
// the record is undecodable or too short.
func (p *Provider) UnwrapDataKey(record string, passphrase []byte) (*DataKey, error) {
	raw, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return nil, ErrMalformedBlob
	}

	if len(raw) < SaltSize+NonceSize+TagSize+1 {
		return nil, ErrMalformedBlob
	}

	salt := raw[:SaltSize]
	nonce := raw[SaltSize : SaltSize+NonceSize]
	sealed := raw[SaltSize+NonceSize:]

	kdf := &KDF{Salt: salt, Iterations: p.iterations()}
	kek := kdf.DeriveKey(passphrase)
	defer ClearBytes(kek)

	gcm, err := sealKEK(kek)
	if err != nil {
		return nil, err
	}

	keyBytes, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	defer ClearBytes(keyBytes)

	return ImportDataKey(keyBytes)
}

// RewrapDataKey unwraps a record with the old passphrase and wraps the same
// data key under the new one, with a fresh salt and nonce. The wrapped
// values themselves are untouched.
func (p *Provider) RewrapDataKey(record string, oldPassphrase, newPassphrase []byte) (string, error) {
	dek, err := p.UnwrapDataKey(record, oldPassphrase)
	if err != nil {
		return "", err
	}
	defer dek.Destroy()

	return p.WrapDataKey(dek, newPassphrase)
}
