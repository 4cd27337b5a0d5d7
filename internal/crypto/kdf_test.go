package crypto

import (
	"bytes"
	"testing"
)

// fixedRand always returns the same byte, giving deterministic salts and
// nonces without touching process-wide state.
type fixedRand struct {
	b byte
}

func (r fixedRand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
	}
	return len(p), nil
}

func TestNewKDF(t *testing.T) {
	p := &Provider{}

	kdf1, err := p.NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	kdf2, err := p.NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}

	if len(kdf1.Salt) != SaltSize {
		t.Errorf("Expected %d-byte salt, got %d", SaltSize, len(kdf1.Salt))
	}
	if kdf1.Iterations != DefaultIters {
		t.Errorf("Expected %d iterations, got %d", DefaultIters, kdf1.Iterations)
	}
	if bytes.Equal(kdf1.Salt, kdf2.Salt) {
		t.Error("Two KDFs should have different salts")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	kdf := &KDF{
		Salt:       []byte("0123456789abcdef"),
		Iterations: 4096,
	}

	key1 := kdf.DeriveKey([]byte("correct horse"))
	key2 := kdf.DeriveKey([]byte("correct horse"))

	if len(key1) != KeySize {
		t.Errorf("Expected %d-byte key, got %d", KeySize, len(key1))
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Same passphrase and salt should derive the same key")
	}

	key3 := kdf.DeriveKey([]byte("battery staple"))
	if bytes.Equal(key1, key3) {
		t.Error("Different passphrases should derive different keys")
	}

	other := &KDF{Salt: []byte("fedcba9876543210"), Iterations: 4096}
	key4 := other.DeriveKey([]byte("correct horse"))
	if bytes.Equal(key1, key4) {
		t.Error("Different salts should derive different keys")
	}
}

func TestDeriveKeyEmptyPassphrase(t *testing.T) {
	// Accepted but weak, rejecting is the caller's job
	kdf := &KDF{Salt: []byte("0123456789abcdef"), Iterations: 4096}
	key := kdf.DeriveKey(nil)
	if len(key) != KeySize {
		t.Errorf("Expected %d-byte key, got %d", KeySize, len(key))
	}
}

func TestProviderFixedRand(t *testing.T) {
	p := &Provider{Rand: fixedRand{b: 0xAB}, Iterations: 4096}

	salt, err := p.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(salt) != SaltSize {
		t.Errorf("Expected %d-byte salt, got %d", SaltSize, len(salt))
	}
	for _, b := range salt {
		if b != 0xAB {
			t.Fatal("Injected random source should control salt bytes")
		}
	}
}
