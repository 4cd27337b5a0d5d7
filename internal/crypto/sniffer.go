package crypto

import "encoding/base64"

// minEncryptedLen is the smallest decoded size a well-formed value blob can
// have: nonce, tag, and at least one ciphertext byte.
const minEncryptedLen = NonceSize + TagSize + 1

// IsEncrypted reports whether a stored string looks like a ledgerlock value
// blob: valid base64 decoding to at least minEncryptedLen bytes.
//
// This is a best-effort classification for migration and display logic, not
// a cryptographic verification: a plaintext string that happens to decode
// to enough bytes is misclassified as ciphertext. It must never be used as
// a security boundary.
func IsEncrypted(value string) bool {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return false
	}
	return len(raw) >= minEncryptedLen
}
