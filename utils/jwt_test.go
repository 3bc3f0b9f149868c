package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	username, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if username != "alice" {
		t.Errorf("username = %q, want alice", username)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTEmptyToken(t *testing.T) {
	if _, err := ParseJWT("secret", ""); err == nil {
		t.Error("expected error for empty token")
	}
}
