package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Import encrypts the fields of a plaintext statement file into the vault.
// Values that already look encrypted are stored unchanged, so re-importing
// a protected statement never double-encrypts.
func Import(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", path, err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(data)

	v := vault.New(".")

	passphrase := GetPassphraseOrExit(v, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	result, err := v.Import(ctx, data, passphrase)
	if err != nil {
		HandleError(err)
	}

	for _, name := range result.Amounts {
		fmt.Printf("encrypted: %s (amount)\n", name)
	}
	for _, name := range result.Notes {
		fmt.Printf("encrypted: %s (note)\n", name)
	}
	for _, name := range result.Preserved {
		fmt.Printf("preserved: %s (already encrypted)\n", name)
	}

	total := len(result.Amounts) + len(result.Notes) + len(result.Preserved)
	fmt.Printf("imported: %d fields from %s\n", total, path)
}
