package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/calhub/internal/auth"
	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	userID := uuid.NewString()

	token, err := m.GenerateAccessToken(userID, "a@b.co")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)

	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.UserID() != userID {
		t.Fatalf("subject mismatch: got %q want %q", claims.UserID(), userID)
	}

	if claims.Email != "a@b.co" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}

	if claims.ID == "" {
		t.Fatalf("expected a jti claim")
	}

	ttl := time.Until(claims.ExpiresAt.Time)

	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected ttl: %v", ttl)
	}
}

func TestExpiredTokenFailsVerification(t *testing.T) {
	// negative ttl issues an already-expired token
	m := auth.NewManager("test-secret-key", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.NewString(), "a@b.co")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = m.VerifyAccessToken(token)

	if err == nil {
		t.Fatalf("expected verification of an expired token to fail")
	}
}

func TestTamperedTokenFailsVerification(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	token, err := m.GenerateAccessToken(uuid.NewString(), "a@b.co")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// flip one byte of the signature segment
	parts := strings.Split(token, ".")

	if len(parts) != 3 {
		t.Fatalf("unexpected token structure: %q", token)
	}

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = m.VerifyAccessToken(strings.Join(parts, "."))

	if err == nil {
		t.Fatalf("expected verification of a tampered token to fail")
	}
}

func TestWrongSecretFailsVerification(t *testing.T) {
	issuer := auth.NewManager("secret-one", time.Hour)
	verifier := auth.NewManager("secret-two", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.NewString(), "a@b.co")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = verifier.VerifyAccessToken(token)

	if err == nil {
		t.Fatalf("expected verification with the wrong secret to fail")
	}
}

func TestMalformedTokenFailsVerification(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := m.VerifyAccessToken(tok)

		if err == nil {
			t.Fatalf("expected malformed token %q to fail", tok)
		}
	}
}
