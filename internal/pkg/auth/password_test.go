package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !CheckPassword(hash, "correct horse battery staple1") {
		t.Fatalf("correct password should verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("wrong password should not verify")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("samepassword1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("samepassword1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestCheckPasswordAgainstGarbageHash(t *testing.T) {
	if CheckPassword("not-a-hash", "anything") {
		t.Fatalf("garbage hash should never verify")
	}
}
