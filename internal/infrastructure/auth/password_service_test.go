package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %s", hash)
	}

	if !svc.Verify(hash, "password123") {
		t.Error("correct password rejected")
	}
	if svc.Verify(hash, "password124") {
		t.Error("wrong password accepted")
	}
	if svc.Verify(hash, "") {
		t.Error("empty password accepted")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	first, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestPasswordServiceImpl_Verify_GarbageHash(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	if svc.Verify("not-a-bcrypt-hash", "password123") {
		t.Error("garbage hash must never verify")
	}
	if svc.Verify("", "password123") {
		t.Error("empty hash must never verify")
	}
}
