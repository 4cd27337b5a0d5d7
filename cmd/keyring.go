package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/crypto"
	"github.com/live-labs/ledgerlock/internal/keyring"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// KeyringSave saves the passphrase to the OS keyring
func KeyringSave() {
	v := vault.New(".")

	// Prompt for passphrase
	passphrase, err := vault.ReadPassphrase("Enter passphrase: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(passphrase)

	// Verify passphrase unwraps the data key
	if err := v.VerifyPassphrase(passphrase); err != nil {
		HandleError(err)
	}

	// Get vault ID (create if not exists)
	vaultID, err := v.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassphrase(vaultID, string(passphrase)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Passphrase saved to keyring")
}

// KeyringDelete removes the passphrase from the OS keyring
func KeyringDelete() {
	v := vault.New(".")

	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	if err := keyring.DeletePassphrase(vaultID); err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	fmt.Println("Passphrase removed from keyring")
}

// KeyringStatus checks if a passphrase is stored in the keyring
func KeyringStatus() {
	v := vault.New(".")

	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("Passphrase: not stored")
		return
	}

	if keyring.HasPassphrase(vaultID) {
		fmt.Println("Passphrase: stored in keyring")
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
