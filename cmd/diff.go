package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Diff compares vault contents with a local statement file
func Diff(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", path, err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(data)

	v := vault.New(".")

	passphrase := GetPassphraseOrExit(v, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	diff, err := v.Diff(ctx, passphrase, data, path)
	if err != nil {
		HandleError(err)
	}

	if diff == "" {
		fmt.Println("No changes detected")
		return
	}
	fmt.Print(diff)
}
