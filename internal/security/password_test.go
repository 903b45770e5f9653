package security_test

import (
	"testing"

	"github.com/volunteerhub/api/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := security.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("expected matching password to verify: %v", err)
	}

	if err := security.CheckPassword(hash, "wrong password"); err == nil {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestCheckPasswordRejectsBadHash(t *testing.T) {
	if err := security.CheckPassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatal("expected malformed hash to fail verification")
	}
}
