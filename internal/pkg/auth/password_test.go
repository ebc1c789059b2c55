package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	if hasher := NewBcryptHasher(0); hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", hasher.cost)
	}
	if hasher := NewBcryptHasher(bcrypt.DefaultCost + 2); hasher.cost != bcrypt.DefaultCost+2 {
		t.Fatalf("unexpected cost: %d", hasher.cost)
	}
}

func TestBcryptHasherHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("duka-admin-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "duka-admin-pass" {
		t.Fatalf("unexpected hash: %q", hash)
	}
	if err := hasher.Compare(hash, "duka-admin-pass"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "guess"); err == nil {
		t.Fatal("expected compare error for wrong password")
	}
}

func TestBcryptHasherHashError(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}
}
