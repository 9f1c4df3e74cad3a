package session_test

import (
	"testing"
	"time"

	"autovitrine/internal/session"
)

func TestIssueAndAuthenticate(t *testing.T) {
	reg := session.New(12 * time.Hour)
	s := reg.Issue("chefe", "loja-a")
	if s.Token == "" || len(s.Token) < 32 {
		t.Fatalf("weak token: %q", s.Token)
	}
	if !s.ExpiresAt.After(time.Now()) {
		t.Fatal("expiry must be in the future at creation")
	}
	got, okAuth := reg.Authenticate(s.Token)
	if !okAuth {
		t.Fatal("fresh token rejected")
	}
	if got.Subject != "chefe" || got.StoreSlug != "loja-a" {
		t.Fatalf("session scope lost: %+v", got)
	}
	if _, okAuth := reg.Authenticate("unknown"); okAuth {
		t.Fatal("unknown token accepted")
	}
}

func TestTokensAreUnique(t *testing.T) {
	reg := session.New(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := reg.Issue("x", "")
		if seen[s.Token] {
			t.Fatal("duplicate token issued")
		}
		seen[s.Token] = true
	}
}

func TestExpiredTokenRejectedAndSwept(t *testing.T) {
	now := time.Now()
	clock := &now
	reg := session.New(12 * time.Hour).WithClock(func() time.Time { return *clock })

	s := reg.Issue("admin", "")
	later := now.Add(13 * time.Hour)
	clock = &later

	if _, okAuth := reg.Authenticate(s.Token); okAuth {
		t.Fatal("expired token accepted")
	}
	// The failed authenticate doubles as the sweep.
	if reg.Len() != 0 {
		t.Fatalf("expired entry not swept, registry has %d entries", reg.Len())
	}
}

func TestSweepIsTriggeredByOtherTraffic(t *testing.T) {
	now := time.Now()
	clock := &now
	reg := session.New(time.Hour).WithClock(func() time.Time { return *clock })

	stale := reg.Issue("a", "")
	later := now.Add(2 * time.Hour)
	clock = &later
	fresh := reg.Issue("b", "")

	if _, okAuth := reg.Authenticate(fresh.Token); !okAuth {
		t.Fatal("fresh token rejected")
	}
	if reg.Len() != 1 {
		t.Fatalf("stale entry %q survived the sweep", stale.Token)
	}
}

func TestRevoke(t *testing.T) {
	reg := session.New(time.Hour)
	s := reg.Issue("admin", "")
	reg.Revoke(s.Token)
	if _, okAuth := reg.Authenticate(s.Token); okAuth {
		t.Fatal("revoked token accepted")
	}
}

func TestRevokeStoreSparesCallerAndOtherTenants(t *testing.T) {
	reg := session.New(time.Hour)
	caller := reg.Issue("chefe", "loja-a")
	sibling := reg.Issue("chefe", "loja-a")
	other := reg.Issue("dona", "loja-b")
	legacy := reg.Issue("admin", "")

	reg.RevokeStore("loja-a", caller.Token)

	if _, okAuth := reg.Authenticate(caller.Token); !okAuth {
		t.Fatal("caller session must survive")
	}
	if _, okAuth := reg.Authenticate(sibling.Token); okAuth {
		t.Fatal("sibling session must be revoked")
	}
	if _, okAuth := reg.Authenticate(other.Token); !okAuth {
		t.Fatal("other tenant's session must survive")
	}
	if _, okAuth := reg.Authenticate(legacy.Token); !okAuth {
		t.Fatal("legacy session must survive")
	}
}
