// Package vault provides the main ledgerlock operations on top of the
// envelope-encryption core.
//
// Core operations include:
//   - Init: Create a new vault, generate a data key and wrap it under a
//     passphrase-derived key
//   - SetAmount/SetNote, GetAmount/Get: Encrypt and decrypt individual
//     account field values
//   - ChangePassphrase: Re-wrap the data key under a new passphrase; the
//     stored values themselves are never re-encrypted
//   - Import: Bring in a plaintext statement file, skipping values that
//     already look encrypted
//   - Diff: Compare decrypted vault contents with a local statement file
//
// The data key is unwrapped per operation and cleared before the call
// returns; the vault holds no key material between calls. Passphrase
// caching (keyring, session) is the CLI's concern, not this package's.
package vault
