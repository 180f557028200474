package crypto

import (
	"strings"
	"testing"
)

const testKeyHex = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestAESGCMRoundTrip(t *testing.T) {
	cipher, err := NewAESGCM(testKeyHex)
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}

	sealed, err := cipher.Encrypt("owner@acme.example")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if sealed == "owner@acme.example" {
		t.Fatalf("ciphertext equals plaintext")
	}

	opened, err := cipher.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if opened != "owner@acme.example" {
		t.Fatalf("expected round trip, got %q", opened)
	}
}

func TestAESGCMEmptyStringPassthrough(t *testing.T) {
	cipher, err := NewAESGCM(testKeyHex)
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}
	if sealed, _ := cipher.Encrypt(""); sealed != "" {
		t.Fatalf("expected empty ciphertext, got %q", sealed)
	}
	if opened, _ := cipher.Decrypt(""); opened != "" {
		t.Fatalf("expected empty plaintext, got %q", opened)
	}
}

func TestAESGCMNoncesDiffer(t *testing.T) {
	cipher, err := NewAESGCM(testKeyHex)
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}
	first, _ := cipher.Encrypt("same input")
	second, _ := cipher.Encrypt("same input")
	if first == second {
		t.Fatalf("expected distinct ciphertexts for repeated input")
	}
}

func TestAESGCMRejectsBadKeys(t *testing.T) {
	if _, err := NewAESGCM("not-hex"); err == nil {
		t.Fatalf("expected error for non-hex key")
	}
	if _, err := NewAESGCM(strings.Repeat("ab", 16)); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestAESGCMRejectsTamperedCiphertext(t *testing.T) {
	cipher, err := NewAESGCM(testKeyHex)
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}
	if _, err := cipher.Decrypt("bm90LXZhbGlkLWNpcGhlcnRleHQtYXQtYWxsLXJlYWxseQ=="); err == nil {
		t.Fatalf("expected tampered ciphertext to fail")
	}
}
