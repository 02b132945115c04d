package auth

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

func TestTokenRoundtrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	user := &commonModels.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test Student",
		Email: "student@university.edu",
		Role:  commonModels.RoleStudent,
	}

	token, expiresAt, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expiresAt) < 23*time.Hour {
		t.Errorf("token expires too soon: %v", expiresAt)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.Email() != user.Email {
		t.Errorf("Email got %s, want %s", claims.Email(), user.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("Role got %s, want %s", claims.Role, user.Role)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("UserID got %s, want %s", claims.UserID, user.ID.Hex())
	}
}

func TestTokenWrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a")
	other := NewTokenManager("secret-b")

	token, _, err := m.Generate(&commonModels.User{
		ID:    primitive.NewObjectID(),
		Email: "x@y.edu",
		Role:  commonModels.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret")
	if _, err := m.Validate("not.a.jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}
