package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/lexical"
	"github.com/phishscan/phishscan/internal/model"
)

// stubTLS returns a fixed TLS record or error.
type stubTLS struct {
	info model.TLSInfo
	err  error
}

func (s *stubTLS) Inspect(_ context.Context, _ string) (model.TLSInfo, error) {
	return s.info, s.err
}

// stubContent returns a fixed content record or error.
type stubContent struct {
	info model.ContentInfo
	err  error
}

func (s *stubContent) Analyze(_ context.Context, _ string) (model.ContentInfo, error) {
	return s.info, s.err
}

// stubRegistration returns a fixed registration record or error.
type stubRegistration struct {
	info model.RegistrationInfo
	err  error
}

func (s *stubRegistration) Lookup(_ context.Context, _ string) (model.RegistrationInfo, error) {
	return s.info, s.err
}

// newTestCollector wires a collector from healthy stubs; tests override
// individual stubs before calling Collect.
func newTestCollector(tls *stubTLS, content *stubContent, reg *stubRegistration) *Collector {
	return New(lexical.NewAnalyzer(config.DefaultRules()), tls, content, reg)
}

func healthyStubs() (*stubTLS, *stubContent, *stubRegistration) {
	days := 3650
	return &stubTLS{info: model.TLSInfo{
			Valid:   true,
			Issuer:  "CN=Test CA",
			Subject: "CN=example.com",
			Expiry:  time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		&stubContent{info: model.ContentInfo{
			Analyzed:           true,
			Title:              "Example",
			SuspiciousKeywords: []string{},
		}},
		&stubRegistration{info: model.RegistrationInfo{
			DaysOld:     &days,
			IsNewDomain: false,
			Registrar:   "Test Registrar",
		}}
}

// TestCollectAllExtractorsSucceed tests the happy path where every
// extractor contributes its record.
func TestCollectAllExtractorsSucceed(t *testing.T) {
	t.Parallel()

	tls, content, reg := healthyStubs()
	c := newTestCollector(tls, content, reg)

	vec := c.Collect(context.Background(), "https://login.example.com/account")

	if vec.URL != "https://login.example.com/account" {
		t.Errorf("URL = %q", vec.URL)
	}
	if vec.Host != "login.example.com" {
		t.Errorf("Host = %q, expected login.example.com", vec.Host)
	}
	if !vec.TLS.Valid {
		t.Error("TLS record should carry the inspector result")
	}
	if !vec.Content.Analyzed || vec.Content.Title != "Example" {
		t.Errorf("Content record not carried through: %+v", vec.Content)
	}
	if vec.Registration.DaysOld == nil || *vec.Registration.DaysOld != 3650 {
		t.Errorf("Registration record not carried through: %+v", vec.Registration)
	}
}

// TestCollectDegradesTLSFailure tests that a failed TLS probe yields the
// worst-case certificate record without affecting the other extractors.
func TestCollectDegradesTLSFailure(t *testing.T) {
	t.Parallel()

	tls, content, reg := healthyStubs()
	tls.info = model.TLSInfo{}
	tls.err = errors.New("handshake timeout")

	vec := newTestCollector(tls, content, reg).Collect(context.Background(), "https://example.com")

	if vec.TLS.Valid {
		t.Error("degraded TLS record must not be valid")
	}
	if !vec.TLS.SelfSigned {
		t.Error("degraded TLS record must assume self-signed")
	}
	if vec.TLS.Error != "handshake timeout" {
		t.Errorf("TLS.Error = %q", vec.TLS.Error)
	}
	if !vec.Content.Analyzed {
		t.Error("content extraction should be unaffected by a TLS failure")
	}
}

// TestCollectDegradesContentFailure tests that a failed fetch yields an
// unanalyzed content record.
func TestCollectDegradesContentFailure(t *testing.T) {
	t.Parallel()

	tls, content, reg := healthyStubs()
	content.info = model.ContentInfo{}
	content.err = errors.New("connection refused")

	vec := newTestCollector(tls, content, reg).Collect(context.Background(), "https://example.com")

	if vec.Content.Analyzed {
		t.Error("degraded content record must not be analyzed")
	}
	if vec.Content.Error != "connection refused" {
		t.Errorf("Content.Error = %q", vec.Content.Error)
	}
	if !vec.TLS.Valid || vec.Registration.IsNewDomain {
		t.Error("other extractors should be unaffected by a content failure")
	}
}

// TestCollectDegradesRegistrationFailure tests that a failed WHOIS lookup
// treats the domain as new.
func TestCollectDegradesRegistrationFailure(t *testing.T) {
	t.Parallel()

	tls, content, reg := healthyStubs()
	reg.info = model.RegistrationInfo{}
	reg.err = errors.New("whois query failed")

	vec := newTestCollector(tls, content, reg).Collect(context.Background(), "https://example.com")

	if !vec.Registration.IsNewDomain {
		t.Error("unknown registration age must be treated as new")
	}
	if vec.Registration.DaysOld != nil {
		t.Error("degraded registration record must not report an age")
	}
	if vec.Registration.Error != "whois query failed" {
		t.Errorf("Registration.Error = %q", vec.Registration.Error)
	}
}

// TestCollectAllExtractorsFail tests that even total extractor failure
// still produces a complete vector with lexical features intact.
func TestCollectAllExtractorsFail(t *testing.T) {
	t.Parallel()

	c := newTestCollector(
		&stubTLS{err: errors.New("tls down")},
		&stubContent{err: errors.New("fetch down")},
		&stubRegistration{err: errors.New("whois down")},
	)

	vec := c.Collect(context.Background(), "http://192.168.1.1/secure-login")

	if !vec.HasIPHost {
		t.Error("lexical features must survive extractor failures")
	}
	if vec.TLS.Error == "" || vec.Content.Error == "" || vec.Registration.Error == "" {
		t.Error("every degraded sub-record must carry its error text")
	}
	if vec.TLS.Valid || vec.Content.Analyzed || !vec.Registration.IsNewDomain {
		t.Error("degraded sub-records must be conservative")
	}
}
