package cmd

import (
	"context"
	"fmt"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Get decrypts and prints a field value
func Get(ctx context.Context, name string) {
	v := vault.New(".")

	passphrase := GetPassphraseOrExit(v, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	value, err := v.Get(ctx, name, passphrase)
	if err != nil {
		HandleError(err)
	}

	fmt.Println(value)
}
