package cmd

import (
	"context"
	"fmt"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Export decrypts all fields and prints them as statement text
func Export(ctx context.Context) {
	v := vault.New(".")

	passphrase := GetPassphraseOrExit(v, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	statement, err := v.Export(ctx, passphrase)
	if err != nil {
		HandleError(err)
	}

	fmt.Print(statement)
}
