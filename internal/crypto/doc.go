// Package crypto implements the envelope-encryption core for ledgerlock.
//
// A passphrase and a random 16-byte salt derive a key-encryption key (KEK)
// via PBKDF2-HMAC-SHA256 (100,000 iterations by default). The KEK wraps a
// randomly generated 256-bit data-encryption key (DEK); only the wrapped
// form is ever persisted. Field values are encrypted under the DEK with
// AES-256-GCM:
//   - 12-byte random nonce per encryption operation
//   - 16-byte authentication tag prevents tampering
//   - blobs are base64 text: nonce || ciphertext || tag
//
// Changing the passphrase re-wraps the DEK under a new KEK; the values
// themselves never need re-encryption.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call DataKey.Destroy() / Encryptor.Destroy() when done
package crypto
