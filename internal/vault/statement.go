package vault

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/shopspring/decimal"

	"github.com/live-labs/ledgerlock/internal/crypto"
)

// Statement files are plain text, one "name = value" per line. Blank lines
// and lines starting with # are ignored. This is the exchange format for
// import, export and diff.

// StatementEntry is one parsed statement line
type StatementEntry struct {
	Name  string
	Value string
}

// ParseStatement parses statement file content
func ParseStatement(data []byte) ([]StatementEntry, error) {
	var entries []StatementEntry

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: expected name = value", i+1)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty field name", i+1)
		}

		entries = append(entries, StatementEntry{
			Name:  name,
			Value: strings.TrimSpace(value),
		})
	}

	return entries, nil
}

// Export decrypts all fields and renders them as statement text, sorted by
// field name
func (v *Vault) Export(ctx context.Context, passphrase []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := v.List(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", ErrNoFields
	}

	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return "", err
	}
	defer enc.Destroy()

	var b strings.Builder
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		blob, err := db.GetValue(entry.Name)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", entry.Name, err)
		}

		value, err := enc.DecryptText(blob)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt %s: %w", entry.Name, err)
		}

		fmt.Fprintf(&b, "%s = %s\n", entry.Name, value)
	}

	return b.String(), nil
}

// ImportResult describes what an import did
type ImportResult struct {
	Amounts   []string // Fields stored as amounts
	Notes     []string // Fields stored as notes
	Preserved []string // Values that already looked encrypted, stored as-is
}

// Import brings statement entries into the vault. Values that already look
// like ledgerlock blobs are stored unchanged so that re-importing an
// already-protected statement never double-encrypts; everything else is
// encrypted, as an amount when the value parses as a decimal number.
func (v *Vault) Import(ctx context.Context, data []byte, passphrase []byte) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := ParseStatement(data)
	if err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	enc, err := v.unlock(db, passphrase)
	if err != nil {
		return nil, err
	}
	defer enc.Destroy()

	result := &ImportResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if crypto.IsEncrypted(entry.Value) {
			// Already ciphertext, keep the blob and whatever kind the
			// index already records for it
			kind := KindNote
			if existing, err := db.GetFieldEntry(entry.Name); err == nil && existing != nil {
				kind = existing.Kind
			}
			if err := v.store(db, entry.Name, kind, entry.Value); err != nil {
				return nil, err
			}
			result.Preserved = append(result.Preserved, entry.Name)
			continue
		}

		if amount, err := decimal.NewFromString(entry.Value); err == nil {
			blob, err := enc.EncryptAmount(amount)
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt %s: %w", entry.Name, err)
			}
			if err := v.store(db, entry.Name, KindAmount, blob); err != nil {
				return nil, err
			}
			result.Amounts = append(result.Amounts, entry.Name)
			continue
		}

		blob, err := enc.EncryptText(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt %s: %w", entry.Name, err)
		}
		if err := v.store(db, entry.Name, KindNote, blob); err != nil {
			return nil, err
		}
		result.Notes = append(result.Notes, entry.Name)
	}

	if err := db.UpdateModified(); err != nil {
		return nil, err
	}
	return result, nil
}

// Diff compares decrypted vault contents with a local statement file and
// returns a unified diff, empty when identical
func (v *Vault) Diff(ctx context.Context, passphrase []byte, localData []byte, label string) (string, error) {
	vaultText, err := v.Export(ctx, passphrase)
	if err != nil {
		return "", err
	}

	return unifiedDiff(label, []byte(vaultText), localData), nil
}

func contentEqual(a, b []byte) bool {
	aHash := sha256.Sum256(a)
	bHash := sha256.Sum256(b)
	return bytes.Equal(aHash[:], bHash[:])
}

// unifiedDiff generates a unified diff using the go-diff library
func unifiedDiff(label string, vaultData, localData []byte) string {
	if contentEqual(vaultData, localData) {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	vaultStr, localStr := string(vaultData), string(localData)
	a, b, lineArray := dmp.DiffLinesToChars(vaultStr, localStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(vaultStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- a/%s\n", label))
	result.WriteString(fmt.Sprintf("+++ b/%s\n", label))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}
