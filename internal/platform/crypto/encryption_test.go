package crypto

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected configured service")
	}

	plain := []byte("sensitive salary data")
	encrypted, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if string(encrypted) == string(plain) {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := svc.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(decrypted) != string(plain) {
		t.Fatalf("round trip mismatch: %q", decrypted)
	}
}

func TestDecimalCodec(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	value := decimal.RequireFromString("3123.45")
	encoded, err := svc.EncodeDecimal(value)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(encoded, "3123") {
		t.Fatal("encoded value leaks plaintext")
	}

	decoded, err := svc.DecodeDecimal(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Fatalf("decoded = %s, want %s", decoded, value)
	}
}

func TestDecodeDecimalEmpty(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	decoded, err := svc.DecodeDecimal("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if !decoded.IsZero() {
		t.Fatalf("expected zero, got %s", decoded)
	}
}

func TestUnconfiguredPassthrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}

	value := decimal.NewFromInt(500)
	encoded, err := svc.EncodeDecimal(value)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := svc.DecodeDecimal(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Fatalf("decoded = %s, want %s", decoded, value)
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("expected error for short key")
	}
}
