package crypto

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// EncryptText encrypts a UTF-8 string field value
func (e *Encryptor) EncryptText(value string) (string, error) {
	return e.Encrypt([]byte(value))
}

// DecryptText decrypts a blob produced by EncryptText. Fails with
// ErrInvalidText if the decrypted bytes are not valid UTF-8; a well-formed
// producer never triggers this, but it is checked rather than assumed.
func (e *Encryptor) DecryptText(blob string) (string, error) {
	plaintext, err := e.Decrypt(blob)
	if err != nil {
		return "", err
	}
	defer ClearBytes(plaintext)

	if !utf8.Valid(plaintext) {
		return "", ErrInvalidText
	}

	return string(plaintext), nil
}

// EncryptAmount encrypts a monetary amount in its canonical decimal text
// form. Decimal text is exact, so any amount round-trips without the
// precision loss a float conversion would risk.
func (e *Encryptor) EncryptAmount(amount decimal.Decimal) (string, error) {
	return e.EncryptText(amount.String())
}

// DecryptAmount decrypts a blob produced by EncryptAmount and parses the
// canonical decimal text back into an amount
func (e *Encryptor) DecryptAmount(blob string) (decimal.Decimal, error) {
	text, err := e.DecryptText(blob)
	if err != nil {
		return decimal.Decimal{}, err
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse amount: %w", err)
	}

	return amount, nil
}
