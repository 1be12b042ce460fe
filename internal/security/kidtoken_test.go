package security

import (
	"testing"
	"time"

	"learnloop/internal/models"
)

func TestKidTokenRoundTrip(t *testing.T) {
	issuer := NewKidTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(models.KidSession{
		ChildID:     42,
		ChildName:   "Maya",
		AvatarEmoji: "🦊",
		ParentID:    7,
	})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	session, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if session.ChildID != 42 || session.ParentID != 7 {
		t.Errorf("round trip lost ids: %+v", session)
	}
	if session.ChildName != "Maya" || session.AvatarEmoji != "🦊" {
		t.Errorf("round trip lost profile fields: %+v", session)
	}
	if session.LoggedInAt.IsZero() {
		t.Error("LoggedInAt should be set from the issued-at claim")
	}
}

func TestKidTokenWrongSecret(t *testing.T) {
	issuer := NewKidTokenIssuer("secret-a", time.Hour)
	other := NewKidTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(models.KidSession{ChildID: 1, ParentID: 2})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestKidTokenExpired(t *testing.T) {
	issuer := NewKidTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(models.KidSession{ChildID: 1, ParentID: 2})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestKidTokenGarbage(t *testing.T) {
	issuer := NewKidTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Error("garbage input should not verify")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request within window should be blocked")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP should have its own budget")
	}
}
