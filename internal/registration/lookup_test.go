package registration

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeCache is an in-memory Cache for tests.
type fakeCache struct {
	created   map[string]time.Time
	registrar map[string]string
	puts      int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		created:   make(map[string]time.Time),
		registrar: make(map[string]string),
	}
}

func (c *fakeCache) Get(_ context.Context, domain string) (time.Time, string, bool) {
	created, ok := c.created[domain]
	return created, c.registrar[domain], ok
}

func (c *fakeCache) Put(_ context.Context, domain string, created time.Time, registrar string) error {
	c.created[domain] = created
	c.registrar[domain] = registrar
	c.puts++
	return nil
}

// TestLookupRejectsEmptyAndIPHosts tests the inputs that short-circuit
// without any network I/O.
func TestLookupRejectsEmptyAndIPHosts(t *testing.T) {
	t.Parallel()

	lookup := NewLookup()

	if _, err := lookup.Lookup(context.Background(), ""); !errors.Is(err, ErrNoHost) {
		t.Errorf("empty host: got %v, expected ErrNoHost", err)
	}
	if _, err := lookup.Lookup(context.Background(), "192.0.2.10"); !errors.Is(err, ErrIPHost) {
		t.Errorf("IPv4 host: got %v, expected ErrIPHost", err)
	}
	if _, err := lookup.Lookup(context.Background(), "192.0.2.10:8443"); !errors.Is(err, ErrIPHost) {
		t.Errorf("IPv4 host with port: got %v, expected ErrIPHost", err)
	}
}

// TestLookupUsesCache tests that a cache hit answers the lookup without a
// WHOIS query, and that subdomains resolve through their registrable
// domain.
func TestLookupUsesCache(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -10) // 10 days old

	cache := newFakeCache()
	cache.created["example.com"] = created
	cache.registrar["example.com"] = "Test Registrar"

	lookup := NewLookup(WithCache(cache))
	lookup.now = func() time.Time { return now }

	info, err := lookup.Lookup(context.Background(), "login.accounts.example.com")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if info.DaysOld == nil || *info.DaysOld != 10 {
		t.Errorf("DaysOld = %v, expected 10", info.DaysOld)
	}
	if !info.IsNewDomain {
		t.Error("a 10 day old domain should be flagged as new")
	}
	if info.Registrar != "Test Registrar" {
		t.Errorf("Registrar = %q, expected Test Registrar", info.Registrar)
	}
}

// TestBuildInfoThreshold tests the 30-day new-domain boundary.
func TestBuildInfoThreshold(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	lookup := NewLookup()
	lookup.now = func() time.Time { return now }

	testCases := []struct {
		name     string
		ageDays  int
		expected bool
	}{
		{"brand new", 0, true},
		{"29 days", 29, true},
		{"30 days", 30, false},
		{"old domain", 4000, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info := lookup.buildInfo(now.AddDate(0, 0, -tc.ageDays), "")
			if info.DaysOld == nil || *info.DaysOld != tc.ageDays {
				t.Errorf("DaysOld = %v, expected %d", info.DaysOld, tc.ageDays)
			}
			if info.IsNewDomain != tc.expected {
				t.Errorf("IsNewDomain = %v, expected %v", info.IsNewDomain, tc.expected)
			}
		})
	}
}

// TestRegistrableDomain tests eTLD+1 resolution.
func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		host     string
		expected string
	}{
		{"example.com", "example.com"},
		{"login.accounts.example.com", "example.com"},
		{"a.b.example.co.uk", "example.co.uk"},
		{"localhost", "localhost"},
	}

	for _, tc := range testCases {
		t.Run(tc.host, func(t *testing.T) {
			t.Parallel()
			if got := registrableDomain(tc.host); got != tc.expected {
				t.Errorf("registrableDomain(%q) = %q, expected %q", tc.host, got, tc.expected)
			}
		})
	}
}
