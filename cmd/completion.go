package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_ledgerlock() {
    local cur prev words cword
    _init_completion || return

    local commands="init set get ls rm passwd status import export diff keyring compact completion help"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    case "${words[1]}" in
        keyring)
            COMPREPLY=($(compgen -W "save forget status" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
        import|diff)
            _filedir
            ;;
    esac
}
complete -F _ledgerlock ledgerlock
`

const zshCompletion = `#compdef ledgerlock

_ledgerlock() {
    local -a commands
    commands=(
        'init:Create a new vault'
        'set:Encrypt and store a field value'
        'get:Decrypt and print a field value'
        'ls:List stored fields'
        'rm:Remove fields from the vault'
        'passwd:Change the vault passphrase'
        'status:Show vault status'
        'import:Import a plaintext statement file'
        'export:Export decrypted fields as statement text'
        'diff:Compare vault contents with a statement file'
        'keyring:Manage the OS keyring passphrase'
        'compact:Compact the vault database'
        'completion:Output shell completion scripts'
        'help:Show help'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        keyring)
            _values 'subcommand' save forget status
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        import|diff)
            _files
            ;;
    esac
}

_ledgerlock
`

const fishCompletion = `complete -c ledgerlock -f
complete -c ledgerlock -n '__fish_use_subcommand' -a init -d 'Create a new vault'
complete -c ledgerlock -n '__fish_use_subcommand' -a set -d 'Encrypt and store a field value'
complete -c ledgerlock -n '__fish_use_subcommand' -a get -d 'Decrypt and print a field value'
complete -c ledgerlock -n '__fish_use_subcommand' -a ls -d 'List stored fields'
complete -c ledgerlock -n '__fish_use_subcommand' -a rm -d 'Remove fields from the vault'
complete -c ledgerlock -n '__fish_use_subcommand' -a passwd -d 'Change the vault passphrase'
complete -c ledgerlock -n '__fish_use_subcommand' -a status -d 'Show vault status'
complete -c ledgerlock -n '__fish_use_subcommand' -a import -d 'Import a plaintext statement file' -F
complete -c ledgerlock -n '__fish_use_subcommand' -a export -d 'Export decrypted fields'
complete -c ledgerlock -n '__fish_use_subcommand' -a diff -d 'Compare vault with a statement file' -F
complete -c ledgerlock -n '__fish_use_subcommand' -a keyring -d 'Manage the OS keyring passphrase'
complete -c ledgerlock -n '__fish_use_subcommand' -a compact -d 'Compact the vault database'
complete -c ledgerlock -n '__fish_use_subcommand' -a completion -d 'Output shell completion scripts'
complete -c ledgerlock -n '__fish_seen_subcommand_from keyring' -a 'save forget status'
complete -c ledgerlock -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
