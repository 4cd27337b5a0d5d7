package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// Passwd changes the vault passphrase by re-wrapping the data key. The
// encrypted field values are untouched.
func Passwd() {
	v := vault.New(".")

	currentPassphrase := GetPassphraseOrExit(v, "Enter current passphrase: ")
	defer crypto.ClearBytes(currentPassphrase)

	newPassphrase, err := vault.ReadPassphraseConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassphrase)

	if err := v.ChangePassphrase(currentPassphrase, newPassphrase); err != nil {
		HandleError(err)
	}

	fmt.Println("✓ Passphrase changed")
}
