package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/vault"
)

// Remove deletes fields from the vault
func Remove(ctx context.Context, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one field argument\n")
		fmt.Fprintf(os.Stderr, "Usage: ledgerlock rm <field> [field...]\n")
		os.Exit(1)
	}

	v := vault.New(".")

	removed, err := v.Remove(ctx, names)
	if err != nil {
		HandleError(err)
	}

	if removed == 0 {
		fmt.Println("No matching fields found in vault")
		return
	}
	fmt.Printf("removed: %d fields\n", removed)
}
