package vault

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/live-labs/ledgerlock/internal/storage"
)

func TestParseStatement(t *testing.T) {
	data := []byte(`# monthly statement
checking.balance = 1234.56

savings.note = vacation fund
spaced   =   keeps inner value
`)

	entries, err := ParseStatement(data)
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "checking.balance" || entries[0].Value != "1234.56" {
		t.Errorf("Unexpected entry: %+v", entries[0])
	}
	if entries[1].Name != "savings.note" || entries[1].Value != "vacation fund" {
		t.Errorf("Unexpected entry: %+v", entries[1])
	}
	if entries[2].Name != "spaced" || entries[2].Value != "keeps inner value" {
		t.Errorf("Unexpected entry: %+v", entries[2])
	}
}

func TestParseStatementErrors(t *testing.T) {
	if _, err := ParseStatement([]byte("no separator here")); err == nil {
		t.Error("Expected error for missing separator")
	}
	if _, err := ParseStatement([]byte("= value without name")); err == nil {
		t.Error("Expected error for empty field name")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	passphrase := []byte("test123")
	v := initTestVault(t, passphrase)

	statement := []byte(`checking.balance = 1234.56
checking.note = joint account
savings.balance = -0.01
`)

	result, err := v.Import(ctx, statement, passphrase)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Amounts) != 2 {
		t.Errorf("Expected 2 amounts, got %v", result.Amounts)
	}
	if len(result.Notes) != 1 {
		t.Errorf("Expected 1 note, got %v", result.Notes)
	}
	if len(result.Preserved) != 0 {
		t.Errorf("Expected no preserved values, got %v", result.Preserved)
	}

	// Export is sorted by field name
	exported, err := v.Export(ctx, passphrase)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := "checking.balance = 1234.56\nchecking.note = joint account\nsavings.balance = -0.01\n"
	if exported != want {
		t.Errorf("Export mismatch:\ngot  %q\nwant %q", exported, want)
	}
}

func TestExportEmptyVault(t *testing.T) {
	ctx := context.Background()
	passphrase := []byte("test123")
	v := initTestVault(t, passphrase)

	if _, err := v.Export(ctx, passphrase); !errors.Is(err, ErrNoFields) {
		t.Errorf("Expected ErrNoFields, got %v", err)
	}
}

func TestImportPreservesEncryptedValues(t *testing.T) {
	ctx := context.Background()
	passphrase := []byte("test123")
	v := initTestVault(t, passphrase)

	if err := v.SetNote(ctx, "note", "original secret", passphrase); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}

	// Grab the stored ciphertext blob as a migration source would see it
	db, err := storage.Open(v.Path())
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	blob, err := db.GetValue("note")
	db.Close()
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}

	statement := []byte("note = " + blob + "\n")
	result, err := v.Import(ctx, statement, passphrase)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Preserved) != 1 || result.Preserved[0] != "note" {
		t.Errorf("Blob value should be preserved, got %+v", result)
	}

	// Not double-encrypted: still decrypts to the original plaintext
	value, err := v.Get(ctx, "note", passphrase)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "original secret" {
		t.Errorf("Expected original plaintext, got %q", value)
	}
}

func TestDiff(t *testing.T) {
	ctx := context.Background()
	passphrase := []byte("test123")
	v := initTestVault(t, passphrase)

	statement := []byte("balance = 100\nnote = hello\n")
	if _, err := v.Import(ctx, statement, passphrase); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	// Identical content diffs empty
	diff, err := v.Diff(ctx, passphrase, statement, "statement.txt")
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if diff != "" {
		t.Errorf("Expected empty diff, got %q", diff)
	}

	// Changed content produces a labeled diff
	local := []byte("balance = 250\nnote = hello\n")
	diff, err = v.Diff(ctx, passphrase, local, "statement.txt")
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if diff == "" {
		t.Fatal("Expected non-empty diff")
	}
	if !strings.Contains(diff, "--- a/statement.txt") || !strings.Contains(diff, "+++ b/statement.txt") {
		t.Errorf("Diff should carry file headers, got %q", diff)
	}
}

func TestDiffWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	passphrase := []byte("test123")
	v := initTestVault(t, passphrase)

	if _, err := v.Import(ctx, []byte("balance = 1\n"), passphrase); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if _, err := v.Diff(ctx, []byte("wrong"), []byte(""), "x"); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("Expected ErrWrongPassphrase, got %v", err)
	}
}
