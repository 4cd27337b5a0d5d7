package cmd

import (
	"context"
	"fmt"

	"github.com/live-labs/ledgerlock/internal/vault"
)

// List shows fields stored in the vault (no passphrase required)
func List(ctx context.Context) {
	v := vault.New(".")

	entries, err := v.List(ctx)
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Printf("No fields in %s\n", vault.VaultFile)
		return
	}

	fmt.Printf("Fields in %s:\n", vault.VaultFile)
	for _, entry := range entries {
		fmt.Printf("  %s (%s, updated %s)\n", entry.Name, entry.Kind, entry.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
