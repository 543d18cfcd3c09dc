package utils

import (
	"encoding/base64"
	"testing"
)

func testKey(t *testing.T) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	t.Setenv("ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(key))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	testKey(t)

	plain := "+5511987654321"
	encrypted, err := EncryptSecret(plain)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if encrypted == plain || encrypted == "" {
		t.Fatalf("ciphertext looks wrong: %q", encrypted)
	}

	decrypted, err := DecryptSecret(encrypted)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if decrypted != plain {
		t.Fatalf("round trip mismatch: expected %q, got %q", plain, decrypted)
	}
}

func TestEncryptSecretEmptyInput(t *testing.T) {
	testKey(t)

	encrypted, err := EncryptSecret("")
	if err != nil || encrypted != "" {
		t.Fatalf("expected empty passthrough, got %q, %v", encrypted, err)
	}
}

func TestEncryptSecretNoncesDiffer(t *testing.T) {
	testKey(t)

	a, err := EncryptSecret("same input")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	b, err := EncryptSecret("same input")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if a == b {
		t.Fatal("two encryptions of the same input produced identical ciphertext")
	}
}

func TestDecryptSecretRejectsGarbage(t *testing.T) {
	testKey(t)

	if _, err := DecryptSecret("bm90LWEtcmVhbC1jaXBoZXJ0ZXh0LWF0LWFsbC1oZXJl"); err == nil {
		t.Fatal("expected error decrypting garbage ciphertext")
	}
}

func TestEncryptSecretMissingKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")

	if _, err := EncryptSecret("data"); err == nil {
		t.Fatal("expected error without ENCRYPTION_KEY")
	}
}
