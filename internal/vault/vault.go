package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/storage"
)

const (
	// VaultFile is the database file name in the account directory
	VaultFile = ".ledgerlock"

	// Field kinds in the public index
	KindAmount = "amount"
	KindNote   = "note"
)

var (
	ErrNotInitialized     = errors.New("ledgerlock not initialized")
	ErrAlreadyExists      = errors.New("ledgerlock already exists")
	ErrWrongPassphrase    = errors.New("wrong passphrase")
	ErrPassphraseRequired = errors.New("passphrase required")
	ErrFieldNotFound      = errors.New("field not found")
	ErrNoFields           = errors.New("no fields in vault")
)

// Vault manages encrypted account field storage
type Vault struct {
	path string
}

// New creates a new Vault instance for the given account directory
func New(dir string) *Vault {
	return &Vault{
		path: filepath.Join(dir, VaultFile),
	}
}

// Path returns the vault database path
func (v *Vault) Path() string {
	return v.path
}

func (v *Vault) open() (*storage.Storage, error) {
	if _, err := os.Stat(v.path); err != nil {
		return nil, ErrNotInitialized
	}
	return storage.Open(v.path)
}

// Init creates a new vault: generates a fresh data key and persists it
// wrapped under the passphrase-derived key, together with the KDF
// iteration count the record was produced with.
func (v *Vault) Init(passphrase []byte) error {
	if _, err := os.Stat(v.path); err == nil {
		return ErrAlreadyExists
	}
	if passphrase == nil {
		return ErrPassphraseRequired
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	provider := &crypto.Provider{}

	dek, err := provider.GenerateDataKey()
	if err != nil {
		return fmt.Errorf("failed to generate data key: %w", err)
	}
	defer dek.Destroy()

	record, err := provider.WrapDataKey(dek, passphrase)
	if err != nil {
		return fmt.Errorf("failed to wrap data key: %w", err)
	}

	if err := db.SetKeyRecord(record); err != nil {
		return fmt.Errorf("failed to store key record: %w", err)
	}
	if err := db.SetIterations(uint32(crypto.DefaultIters)); err != nil {
		return fmt.Errorf("failed to store iterations: %w", err)
	}
	if _, err := db.GetOrCreateVaultID(); err != nil {
		return fmt.Errorf("failed to create vault ID: %w", err)
	}

	return nil
}

// unlock unwraps the data key for the duration of one operation. The caller
// must Destroy the returned encryptor before returning.
func (v *Vault) unlock(db *storage.Storage, passphrase []byte) (*crypto.Encryptor, error) {
	if passphrase == nil {
		return nil, ErrPassphraseRequired
	}

	iterations, err := db.GetIterations()
	if err != nil {
		return nil, fmt.Errorf("failed to get iterations: %w", err)
	}
	record, err := db.GetKeyRecord()
	if err != nil {
		return nil, fmt.Errorf("failed to get key record: %w", err)
	}

	provider := &crypto.Provider{Iterations: int(iterations)}
	dek, err := provider.UnwrapDataKey(record, passphrase)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthFailed) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}

	return provider.NewEncryptor(dek), nil
}

// SetAmount encrypts and stores a monetary amount field
func (v *Vault) SetAmount(ctx context.Context, name string, amount decimal.Decimal, passphrase []byte) error {
	return v.set(ctx, name, KindAmount, passphrase, func(enc *crypto.Encryptor) (string, error) {
		return enc.EncryptAmount(amount)
	})
}

// SetNote encrypts and stores a free-text field
func (v *Vault) SetNote(ctx context.Context, name, value string, passphrase []byte) error {
	return v.set(ctx, name, KindNote, passphrase, func(enc *crypto.Encryptor) (string, error) {
		return enc.EncryptText(value)
	})
}

func (v *Vault) set(ctx context.Context, name, kind string, passphrase []byte, encrypt func(*crypto.Encryptor) (string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return err
	}
	defer enc.Destroy()

	blob, err := encrypt(enc)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", name, err)
	}

	if err := v.store(db, name, kind, blob); err != nil {
		return err
	}

	return db.UpdateModified()
}

// store replaces a field's blob wholesale and refreshes its index entry
func (v *Vault) store(db *storage.Storage, name, kind, blob string) error {
	if err := db.PutValue(name, blob); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	entry := storage.FieldEntry{Name: name, Kind: kind, UpdatedAt: time.Now()}
	if err := db.UpdateIndex(entry); err != nil {
		return fmt.Errorf("failed to update index for %s: %w", name, err)
	}
	return nil
}

// Get decrypts a field and returns its canonical text form
func (v *Vault) Get(ctx context.Context, name string, passphrase []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	entry, err := db.GetFieldEntry(name)
	if err != nil {
		return "", fmt.Errorf("failed to read index: %w", err)
	}
	if entry == nil {
		return "", ErrFieldNotFound
	}

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return "", err
	}
	defer enc.Destroy()

	blob, err := db.GetValue(name)
	if err != nil {
		return "", ErrFieldNotFound
	}

	if entry.Kind == KindAmount {
		amount, err := enc.DecryptAmount(blob)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt %s: %w", name, err)
		}
		return amount.String(), nil
	}

	value, err := enc.DecryptText(blob)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", name, err)
	}
	return value, nil
}

// GetAmount decrypts a monetary amount field
func (v *Vault) GetAmount(ctx context.Context, name string, passphrase []byte) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Decimal{}, err
	}

	db, err := v.open()
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer db.Close()

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer enc.Destroy()

	blob, err := db.GetValue(name)
	if err != nil {
		return decimal.Decimal{}, ErrFieldNotFound
	}

	amount, err := enc.DecryptAmount(blob)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decrypt %s: %w", name, err)
	}
	return amount, nil
}

// List returns the field index sorted by name (no passphrase required)
func (v *Vault) List(ctx context.Context) ([]storage.FieldEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.GetIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Remove deletes fields from the vault. Returns the number of fields
// actually removed.
func (v *Vault) Remove(ctx context.Context, names []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	db, err := v.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	removed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		entry, err := db.GetFieldEntry(name)
		if err != nil {
			return removed, fmt.Errorf("failed to read index: %w", err)
		}
		if entry == nil {
			continue
		}

		if err := db.DeleteValue(name); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		if err := db.RemoveFromIndex(name); err != nil {
			return removed, fmt.Errorf("failed to remove %s from index: %w", name, err)
		}
		removed++
	}

	if removed > 0 {
		if err := db.UpdateModified(); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// ChangePassphrase re-wraps the data key under the new passphrase with a
// fresh salt and nonce. The encrypted values are untouched: only the
// wrapped key record is replaced.
func (v *Vault) ChangePassphrase(currentPassphrase, newPassphrase []byte) error {
	if currentPassphrase == nil || newPassphrase == nil {
		return ErrPassphraseRequired
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	iterations, err := db.GetIterations()
	if err != nil {
		return fmt.Errorf("failed to get iterations: %w", err)
	}
	record, err := db.GetKeyRecord()
	if err != nil {
		return fmt.Errorf("failed to get key record: %w", err)
	}

	// Unwrap with the stored iteration count, re-wrap with the current
	// default
	unwrapProvider := &crypto.Provider{Iterations: int(iterations)}
	dek, err := unwrapProvider.UnwrapDataKey(record, currentPassphrase)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthFailed) {
			return ErrWrongPassphrase
		}
		return fmt.Errorf("failed to unwrap data key: %w", err)
	}
	defer dek.Destroy()

	wrapProvider := &crypto.Provider{}
	newRecord, err := wrapProvider.WrapDataKey(dek, newPassphrase)
	if err != nil {
		return fmt.Errorf("failed to wrap data key: %w", err)
	}

	if err := db.SetKeyRecord(newRecord); err != nil {
		return fmt.Errorf("failed to store key record: %w", err)
	}
	if err := db.SetIterations(uint32(crypto.DefaultIters)); err != nil {
		return fmt.Errorf("failed to store iterations: %w", err)
	}

	return db.UpdateModified()
}

// VerifyPassphrase checks if the passphrase unwraps this vault's data key
func (v *Vault) VerifyPassphrase(passphrase []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return err
	}
	enc.Destroy()

	return nil
}

// StatusInfo contains status information
type StatusInfo struct {
	Fields        []storage.FieldEntry
	AmountCount   int
	NoteCount     int
	Created       time.Time
	Modified      time.Time
	Algorithm     string
	KDFIterations uint32
	Version       int
	VaultID       string
}

// Status returns the current vault status (no passphrase required)
func (v *Vault) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	status := &StatusInfo{
		Fields:    make([]storage.FieldEntry, 0),
		Algorithm: "AES-256-GCM",
		Version:   1,
	}

	if iterations, err := db.GetIterations(); err == nil {
		status.KDFIterations = iterations
	}
	if created, err := db.GetCreated(); err == nil {
		status.Created = created
	}
	if modified, err := db.GetModified(); err == nil {
		status.Modified = modified
	}
	if vaultID, err := db.GetVaultID(); err == nil {
		status.VaultID = vaultID
	}

	entries, err := db.GetIndex()
	if err != nil {
		return status, nil // Return what we have
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status.Fields = append(status.Fields, entry)
		switch entry.Kind {
		case KindAmount:
			status.AmountCount++
		default:
			status.NoteCount++
		}
	}

	return status, nil
}

// Compact compacts the database to reclaim unused space after removals
func (v *Vault) Compact() error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}

// GetVaultID retrieves the vault ID from storage
func (v *Vault) GetVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (v *Vault) GetOrCreateVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}
