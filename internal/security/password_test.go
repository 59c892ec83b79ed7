package security_test

import (
	"testing"

	"github.com/geocoder89/calhub/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("Abcdef1!")

	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "Abcdef1!" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := security.CheckPassword(hash, "Abcdef1!"); err != nil {
		t.Fatalf("check with correct password: %v", err)
	}

	if err := security.CheckPassword(hash, "Abcdef1?"); err == nil {
		t.Fatalf("check with wrong password should fail")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid_longer", "Str0ngP@ssword", true},
		{"too_short", "Ab1!", false},
		{"missing_uppercase", "abcdef1!", false},
		{"missing_digit", "Abcdefg!", false},
		{"missing_symbol", "Abcdefg1", false},
		{"symbol_outside_allowed_set", "Abcdef1#", false},
		{"contains_space", "Abcd ef1!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			err := security.ValidatePassword(tt.password)

			if tt.wantOK && err != nil {
				t.Fatalf("expected %q to pass, got %v", tt.password, err)
			}

			if !tt.wantOK && err == nil {
				t.Fatalf("expected %q to be rejected", tt.password)
			}
		})
	}
}
