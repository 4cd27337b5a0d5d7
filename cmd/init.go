package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Init creates a new vault in the current directory
func Init() {
	v := vault.New(".")

	// Read passphrase (env var or prompt with confirmation)
	passphrase, err := GetPassphraseForInit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(passphrase)

	if err := v.Init(passphrase); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized %s\n", vault.VaultFile)
}
