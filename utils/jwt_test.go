package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "traveler@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sub, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("sub = %q, want user-1", sub)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "traveler@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == HashToken("abd") {
		t.Error("distinct tokens must hash differently")
	}
}
