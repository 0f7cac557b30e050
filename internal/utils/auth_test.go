package utils

import (
	"strings"
	"testing"

	"github.com/packline/packtrace/internal/models"
)

func TestPinHashing(t *testing.T) {
	pin := "4821"

	hash := HashPin(pin)
	// sha256("4821")
	want := "a388f562e286fdf28986f9253579f4d096446e01dd0c771996a51ff11b390fa2"
	if hash != want {
		t.Errorf("HashPin(%q) = %s, want %s", pin, hash, want)
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}
	if hash != strings.ToLower(hash) {
		t.Error("hash must be lowercase hex")
	}

	// Deterministic: terminals and server must agree byte for byte
	if HashPin(pin) != hash {
		t.Error("HashPin must be deterministic")
	}
}

func TestVerifyPin(t *testing.T) {
	stored := HashPin("4821")

	if !VerifyPin(stored, stored) {
		t.Error("matching hashes should verify")
	}
	if !VerifyPin(strings.ToUpper(stored), stored) {
		t.Error("hex case difference should be tolerated")
	}
	if VerifyPin(HashPin("0000"), stored) {
		t.Error("wrong PIN hash should not verify")
	}
}

func TestJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	user := &models.User{
		ID:        42,
		Username:  "operator1",
		Superuser: false,
	}

	// Test Generation
	accessToken, refreshToken, err := GenerateTokens(user, secret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Error("Tokens should not be empty")
	}

	// Test Validation (Success)
	claims, err := ValidateToken(accessToken, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims["username"] != user.Username {
		t.Errorf("Expected username %s, got %v", user.Username, claims["username"])
	}
	// JSON numbers decode as float64
	if id, ok := claims["id"].(float64); !ok || int64(id) != user.ID {
		t.Errorf("Expected user ID %d, got %v", user.ID, claims["id"])
	}

	// Test Validation (Failure - Wrong Key)
	_, err = ValidateToken(accessToken, "wrong-key")
	if err == nil {
		t.Error("Validation should fail with wrong key")
	}
}
