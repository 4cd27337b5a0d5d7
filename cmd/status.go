package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/live-labs/ledgerlock/internal/vault"
)

// Status shows the current state of the vault (no passphrase required)
func Status(ctx context.Context) {
	v := vault.New(".")

	if _, err := os.Stat(vault.VaultFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s file found in current directory\n", vault.VaultFile)
			fmt.Println("Run 'ledgerlock init' to create one")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	status, err := v.Status(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Println("Fields:")
	if len(status.Fields) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, field := range status.Fields {
			fmt.Printf("  %s (%s)\n", field.Name, field.Kind)
		}
	}

	fmt.Printf("\n%d amounts, %d notes\n", status.AmountCount, status.NoteCount)
	fmt.Printf("Cipher: %s, KDF: PBKDF2-HMAC-SHA256 (%d iterations)\n", status.Algorithm, status.KDFIterations)
	fmt.Printf("%s: present (last modified: %s)\n", vault.VaultFile, status.Modified.Format(time.RFC3339))
}
