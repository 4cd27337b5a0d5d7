package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.ledgerlock")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	return db
}

func TestOpenAndInitialize(t *testing.T) {
	db := openTestDB(t)

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if !initialized {
		t.Error("Database should be initialized")
	}
}

func TestKeyRecordAndIterations(t *testing.T) {
	db := openTestDB(t)

	record := "c2FsdC1ub25jZS1zZWFsZWQta2V5"
	if err := db.SetKeyRecord(record); err != nil {
		t.Fatalf("Failed to set key record: %v", err)
	}

	got, err := db.GetKeyRecord()
	if err != nil {
		t.Fatalf("Failed to get key record: %v", err)
	}
	if got != record {
		t.Errorf("Key record mismatch: got %q, want %q", got, record)
	}

	if err := db.SetIterations(100000); err != nil {
		t.Fatalf("Failed to set iterations: %v", err)
	}
	iters, err := db.GetIterations()
	if err != nil {
		t.Fatalf("Failed to get iterations: %v", err)
	}
	if iters != 100000 {
		t.Errorf("Iterations mismatch: got %d, want 100000", iters)
	}
}

func TestKeyRecordNotFound(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetKeyRecord(); err == nil {
		t.Error("Expected error for missing key record")
	}
}

func TestValues(t *testing.T) {
	db := openTestDB(t)

	if err := db.PutValue("checking.balance", "blob-1"); err != nil {
		t.Fatalf("Failed to put value: %v", err)
	}

	blob, err := db.GetValue("checking.balance")
	if err != nil {
		t.Fatalf("Failed to get value: %v", err)
	}
	if blob != "blob-1" {
		t.Errorf("Value mismatch: got %q", blob)
	}

	// Replace wholesale
	if err := db.PutValue("checking.balance", "blob-2"); err != nil {
		t.Fatalf("Failed to replace value: %v", err)
	}
	blob, err = db.GetValue("checking.balance")
	if err != nil {
		t.Fatalf("Failed to get value: %v", err)
	}
	if blob != "blob-2" {
		t.Errorf("Value should be replaced: got %q", blob)
	}

	if err := db.DeleteValue("checking.balance"); err != nil {
		t.Fatalf("Failed to delete value: %v", err)
	}
	if _, err := db.GetValue("checking.balance"); err == nil {
		t.Error("Expected error for deleted value")
	}
}

func TestIndex(t *testing.T) {
	db := openTestDB(t)

	entry := FieldEntry{
		Name:      "checking.balance",
		Kind:      "amount",
		UpdatedAt: time.Now(),
	}
	if err := db.UpdateIndex(entry); err != nil {
		t.Fatalf("Failed to update index: %v", err)
	}

	entries, err := db.GetIndex()
	if err != nil {
		t.Fatalf("Failed to get index: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "checking.balance" || entries[0].Kind != "amount" {
		t.Errorf("Unexpected index contents: %+v", entries)
	}

	single, err := db.GetFieldEntry("checking.balance")
	if err != nil {
		t.Fatalf("Failed to get field entry: %v", err)
	}
	if single == nil || single.Kind != "amount" {
		t.Errorf("Unexpected field entry: %+v", single)
	}

	missing, err := db.GetFieldEntry("unknown")
	if err != nil {
		t.Fatalf("Failed to query unknown field: %v", err)
	}
	if missing != nil {
		t.Error("Unknown field should return nil entry")
	}

	if err := db.RemoveFromIndex("checking.balance"); err != nil {
		t.Fatalf("Failed to remove from index: %v", err)
	}
	entries, err = db.GetIndex()
	if err != nil {
		t.Fatalf("Failed to get index: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Index should be empty, got %+v", entries)
	}
}

func TestVaultID(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetVaultID(); err == nil {
		t.Error("Expected error before vault ID is created")
	}

	id1, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to create vault ID: %v", err)
	}
	if id1 == "" {
		t.Fatal("Vault ID should not be empty")
	}

	id2, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Vault ID should be stable: %q != %q", id1, id2)
	}
}

func TestModifiedTimestamp(t *testing.T) {
	db := openTestDB(t)

	before, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified time: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := db.UpdateModified(); err != nil {
		t.Fatalf("Failed to update modified time: %v", err)
	}

	after, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified time: %v", err)
	}
	if !after.After(before) {
		t.Error("Modified time should advance")
	}
}

func TestCompact(t *testing.T) {
	db := openTestDB(t)

	for _, name := range []string{"a", "b", "c"} {
		if err := db.PutValue(name, "blob-"+name); err != nil {
			t.Fatalf("Failed to put value: %v", err)
		}
	}
	if err := db.DeleteValue("b"); err != nil {
		t.Fatalf("Failed to delete value: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	// Data survives compaction
	blob, err := db.GetValue("a")
	if err != nil {
		t.Fatalf("Failed to get value after compact: %v", err)
	}
	if blob != "blob-a" {
		t.Errorf("Value mismatch after compact: got %q", blob)
	}
	if _, err := db.GetValue("b"); err == nil {
		t.Error("Deleted value should stay deleted after compact")
	}
}
