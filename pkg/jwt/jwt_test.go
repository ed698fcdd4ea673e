package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "worker@sukem.local", "Test Worker", "worker")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "worker@sukem.local" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "worker" {
		t.Errorf("Role = %q, want worker", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}

	token, err := GenerateToken(uuid.New(), "a@b.c", "A", "worker")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token + "tampered"); err == nil {
		t.Error("expected error for tampered signature")
	}
}

func TestResetTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateResetToken(userID, "reset@sukem.local")
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}

	claims, err := ValidateResetToken(token)
	if err != nil {
		t.Fatalf("ValidateResetToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
}

func TestResetTokenNotAcceptedAsSessionToken(t *testing.T) {
	// A reset token must not open a session either
	resetToken, err := GenerateResetToken(uuid.New(), "reset@sukem.local")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(resetToken); err == nil {
		t.Error("reset token should not validate as a session token")
	}
}

func TestResetTokenNotAcceptedAsAuthToken(t *testing.T) {
	// An auth token must not pass the reset endpoint's check
	authToken, err := GenerateToken(uuid.New(), "a@b.c", "A", "manager")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateResetToken(authToken); err == nil {
		t.Error("auth token should not validate as a reset token")
	}
}
