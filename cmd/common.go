package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/ledgerlock/internal/keyring"
	"github.com/live-labs/ledgerlock/internal/vault"
)

// GetPassphrase retrieves the passphrase from the environment, the OS
// keyring, or an interactive prompt, in that order. The caller is
// responsible for calling crypto.ClearBytes on the returned passphrase.
func GetPassphrase(v *vault.Vault, prompt string) ([]byte, error) {
	// Try environment variable first
	passphrase := vault.GetPassphraseFromEnv()
	if passphrase != nil {
		return passphrase, nil
	}

	// Then the OS keyring, if a passphrase was saved for this vault
	if vaultID, err := v.GetVaultID(); err == nil {
		if stored, err := keyring.GetPassphrase(vaultID); err == nil {
			return []byte(stored), nil
		}
	}

	// Prompt user
	passphrase, err := vault.ReadPassphrase(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// GetPassphraseOrExit is like GetPassphrase but exits on error
func GetPassphraseOrExit(v *vault.Vault, prompt string) []byte {
	passphrase, err := GetPassphrase(v, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return passphrase
}

// GetPassphraseForInit retrieves the passphrase for the init command.
// Checks the environment variable first, then prompts with confirmation.
func GetPassphraseForInit() ([]byte, error) {
	passphrase := vault.GetPassphraseFromEnv()
	if passphrase != nil {
		return passphrase, nil
	}

	return vault.ReadPassphraseConfirm()
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: ledgerlock not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'ledgerlock init' first\n")
	case errors.Is(err, vault.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: %s already exists in this directory\n", vault.VaultFile)
		fmt.Fprintf(os.Stderr, "Use 'ledgerlock status' to see current state\n")
	case errors.Is(err, vault.ErrWrongPassphrase):
		fmt.Fprintf(os.Stderr, "Error: wrong passphrase\n")
	case errors.Is(err, vault.ErrFieldNotFound):
		fmt.Fprintf(os.Stderr, "Error: field not found\n")
		fmt.Fprintf(os.Stderr, "Use 'ledgerlock ls' to see stored fields\n")
	case errors.Is(err, vault.ErrNoFields):
		fmt.Fprintf(os.Stderr, "Error: no fields in vault\n")
		fmt.Fprintf(os.Stderr, "Use 'ledgerlock set' to add fields\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
