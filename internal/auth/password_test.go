package auth

import (
	"errors"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("patient-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "" || hash == "patient-secret" {
		t.Errorf("expected an opaque hash, got '%s'", hash)
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("12345")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	hash1, _ := HashPassword("patient-secret")
	hash2, _ := HashPassword("patient-secret")

	if hash1 == hash2 {
		t.Error("same password should produce different hashes due to salt")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("patient-secret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if !CheckPassword(hash, "patient-secret") {
		t.Error("expected correct password to match")
	}
	if CheckPassword(hash, "Patient-secret") {
		t.Error("expected password check to be case sensitive")
	}
	if CheckPassword("not-a-hash", "patient-secret") {
		t.Error("expected invalid hash to fail")
	}
}
