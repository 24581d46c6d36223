package jwt

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42, "buyer@example.com", "plus")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.Email != "buyer@example.com" {
		t.Fatalf("email = %s", claims.Email)
	}
	if claims.Tier != "plus" {
		t.Fatalf("tier = %s", claims.Tier)
	}
	if claims.Subject != "buyer@example.com" {
		t.Fatalf("subject = %s", claims.Subject)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42, "buyer@example.com", "free")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = strings.Repeat("A", len(parts[1]))
	tampered := strings.Join(parts, ".")

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatalf("tampered token must not validate")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateToken(42, "buyer@example.com", "free")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "another-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatalf("token signed with a different secret must not validate")
	}
}
