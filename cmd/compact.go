package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/vault"
)

// Compact compacts the vault database to reclaim unused space
func Compact() {
	v := vault.New(".")

	info, err := os.Stat(vault.VaultFile)
	if err != nil {
		HandleError(vault.ErrNotInitialized)
	}
	sizeBefore := info.Size()

	if err := v.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(vault.VaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("compacted: %d -> %d bytes\n", sizeBefore, info.Size())
}
