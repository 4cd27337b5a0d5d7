package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Set encrypts and stores a field value. Values that parse as a decimal
// number are stored as amounts unless forceNote is set.
func Set(ctx context.Context, name, value string, forceNote bool) {
	v := vault.New(".")

	passphrase := GetPassphraseOrExit(v, "Enter passphrase: ")
	defer crypto.ClearBytes(passphrase)

	if !forceNote {
		if amount, err := decimal.NewFromString(value); err == nil {
			if err := v.SetAmount(ctx, name, amount, passphrase); err != nil {
				HandleError(err)
			}
			fmt.Printf("encrypted: %s (amount)\n", name)
			return
		}
	}

	if err := v.SetNote(ctx, name, value, passphrase); err != nil {
		HandleError(err)
	}
	fmt.Printf("encrypted: %s (note)\n", name)
}
