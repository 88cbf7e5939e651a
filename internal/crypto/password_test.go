package crypto

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the password")
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "secret124") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p, err := GeneratePassword(TempPasswordLength)
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		if len(p) != TempPasswordLength {
			t.Fatalf("got length %d, expected %d", len(p), TempPasswordLength)
		}
		for _, c := range p {
			if !strings.ContainsRune(passwordAlphabet, c) {
				t.Fatalf("character %q outside alphabet", c)
			}
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Error("generated passwords are not random")
	}
}

func TestGeneratePasswordInvalidLength(t *testing.T) {
	if _, err := GeneratePassword(0); err == nil {
		t.Error("expected error for zero length")
	}
}
