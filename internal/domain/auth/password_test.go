package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_ProducesPHCFormat(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected PHC format hash, got %q", hash)
	}
	if !IsHashed(hash) {
		t.Error("IsHashed should recognize a fresh hash")
	}
}

func TestVerifyPassword_Argon2id(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	match, err := VerifyPassword("admin123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !match {
		t.Error("correct password rejected")
	}

	match, err = VerifyPassword("wrongpass", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if match {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPassword_LegacyPlaintext(t *testing.T) {
	// Plaintext values from imported datasets are compared directly;
	// callers upgrade them on first successful login.
	if IsHashed("admin123") {
		t.Error("plaintext should not be detected as hashed")
	}

	match, err := VerifyPassword("admin123", "admin123")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !match {
		t.Error("matching plaintext rejected")
	}

	match, err = VerifyPassword("admin124", "admin123")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if match {
		t.Error("non-matching plaintext accepted")
	}
}

func TestUser_IdentityStripsPasswordHash(t *testing.T) {
	u := &User{
		ID:           "u-1",
		Email:        "john.doe@hrms.com",
		PasswordHash: "$argon2id$not-a-real-hash",
		Role:         RoleEmployee,
		FirstName:    "John",
		LastName:     "Doe",
		Permissions:  []string{"leave.request"},
	}

	id := u.Identity()
	if id.Email != u.Email || id.Role != u.Role || id.FirstName != "John" {
		t.Errorf("identity fields not carried over: %+v", id)
	}
	if len(id.Permissions) != 1 || id.Permissions[0] != "leave.request" {
		t.Errorf("permissions not copied: %v", id.Permissions)
	}

	// Mutating the identity's permission slice must not touch the user.
	id.Permissions[0] = "mutated"
	if u.Permissions[0] != "leave.request" {
		t.Error("identity shares permission slice with user record")
	}
}
