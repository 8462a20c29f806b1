package auth

import (
	"testing"
	"time"
)

func TestIssueVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue("user-1", "Admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "Admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	raw, err := NewTokens("one", time.Hour).Issue("user-1", "User")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokens("two", time.Hour).Verify(raw); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := tokens.Issue("user-1", "User")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tokens.now = time.Now
	if _, err := tokens.Verify(raw); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	if _, err := NewTokens("secret", time.Hour).Issue("", "User"); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := NewTokens("secret", time.Hour).Verify("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
