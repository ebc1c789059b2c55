package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewHMACStrategyDefaults(t *testing.T) {
	strategy := NewHMACStrategy("s3cret", Options{})
	if string(strategy.secret) != "s3cret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected default ttl: %s", strategy.ttl)
	}

	strategy = NewHMACStrategy("s3cret", Options{TTL: 2 * time.Hour})
	if strategy.ttl != 2*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("s3cret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	staffID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if staffID != 42 {
		t.Fatalf("unexpected staff id: %d", staffID)
	}
}

func TestHMACStrategyParseRejections(t *testing.T) {
	strategy := NewHMACStrategy("s3cret", Options{TTL: time.Minute})
	future := time.Now().Add(time.Minute).Unix()

	signed := func(payload string) string {
		return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, strategy.sign(payload))))
	}

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too few parts", base64.StdEncoding.EncodeToString([]byte("staff:7"))},
		{"wrong subject", signed(fmt.Sprintf("visitor:7:%d", future))},
		{"bad staff id", signed(fmt.Sprintf("staff:abc:%d", future))},
		{"bad expiry", signed("staff:7:not-a-number")},
		{"expired", signed(fmt.Sprintf("staff:7:%d", time.Now().Add(-time.Minute).Unix()))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := strategy.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategyParseTamperedSignature(t *testing.T) {
	strategy := NewHMACStrategy("s3cret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		t.Fatalf("unexpected parts count: %d", len(parts))
	}
	parts[3] = "tampered"
	tampered := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyDifferentSecrets(t *testing.T) {
	issuer := NewHMACStrategy("one", Options{TTL: time.Minute})
	verifier := NewHMACStrategy("two", Options{TTL: time.Minute})

	token, err := issuer.IssueToken(9)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}
