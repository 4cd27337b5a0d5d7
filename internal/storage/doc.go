// Package storage provides the BBolt database interface for ledgerlock.
//
// Database structure uses four buckets:
//   - config: KDF iterations, timestamps, vault ID (unencrypted)
//   - index: Field names, kinds, update times (unencrypted, for ls/status)
//   - values: Encrypted field value blobs
//   - keys: The wrapped data-encryption key record
//
// The unencrypted index bucket enables ledgerlock ls and ledgerlock status
// to work without requiring a passphrase, improving UX for common
// operations. Field values and the data key itself never appear in
// plaintext anywhere in the database.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
