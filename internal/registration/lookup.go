package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"golang.org/x/net/publicsuffix"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// newDomainThresholdDays is the registration age below which a domain is
// considered new.
const newDomainThresholdDays = 30

var (
	// ErrNoHost is returned when there is no host to look up.
	ErrNoHost = errors.New("no host to look up")

	// ErrIPHost is returned for IP-literal hosts, which have no domain
	// registration record. The caller degrades this to "treat as new".
	ErrIPHost = errors.New("ip-literal host has no registration record")

	// ErrNoCreationDate is returned when WHOIS data carries no usable
	// creation date.
	ErrNoCreationDate = errors.New("creation date unavailable")
)

// creationDateLayouts are the date formats observed in WHOIS responses
// whose creation date the parser leaves as a raw string.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// Cache stores resolved creation dates so repeated analyses of the same
// registrable domain skip the WHOIS round trip.
type Cache interface {
	// Get returns the cached creation date and registrar for domain.
	// ok is false on a miss or an expired entry.
	Get(ctx context.Context, domain string) (created time.Time, registrar string, ok bool)

	// Put stores the creation date and registrar for domain.
	Put(ctx context.Context, domain string, created time.Time, registrar string) error
}

// Lookup queries domain registration metadata over WHOIS.
// Lookups go to the registrable domain (eTLD+1) of the analyzed host, so
// "login.accounts.example.com" is resolved via "example.com".
type Lookup struct {
	// client is the WHOIS client, configured with a bounded timeout.
	client *whois.Client

	// cache is the optional creation-date cache.
	cache Cache

	// now returns the current time; overridable in tests.
	now func() time.Time

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithTimeout sets the WHOIS query timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Lookup) {
		l.client.SetTimeout(timeout)
	}
}

// WithCache sets the creation-date cache.
func WithCache(cache Cache) Option {
	return func(l *Lookup) {
		l.cache = cache
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lookup) {
		l.logger = logger
	}
}

// NewLookup creates a registration lookup with the default 10 second
// WHOIS timeout and no cache.
func NewLookup(opts ...Option) *Lookup {
	l := &Lookup{
		client: whois.NewClient().SetTimeout(config.DefaultWhoisTimeout),
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Lookup resolves the registration age of host. The returned record
// reports the age in whole calendar days and whether the domain is
// younger than the new-domain threshold. Failures are returned as errors;
// the collector degrades them to {isNewDomain:true, error:...}.
func (l *Lookup) Lookup(ctx context.Context, host string) (model.RegistrationInfo, error) {
	host = stripPort(host)
	if host == "" {
		return model.RegistrationInfo{}, ErrNoHost
	}
	if net.ParseIP(host) != nil {
		return model.RegistrationInfo{}, ErrIPHost
	}

	domain := registrableDomain(host)

	if l.cache != nil {
		if created, registrar, ok := l.cache.Get(ctx, domain); ok {
			l.logger.Debug("registration cache hit", "domain", domain)
			return l.buildInfo(created, registrar), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return model.RegistrationInfo{}, err
	}

	raw, err := l.client.Whois(domain)
	if err != nil {
		return model.RegistrationInfo{}, fmt.Errorf("whois query for %s failed: %w", domain, err)
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return model.RegistrationInfo{}, fmt.Errorf("whois parse for %s failed: %w", domain, err)
	}

	created, err := creationDate(parsed)
	if err != nil {
		return model.RegistrationInfo{}, err
	}

	var registrar string
	if parsed.Registrar != nil {
		registrar = parsed.Registrar.Name
	}

	if l.cache != nil {
		if err := l.cache.Put(ctx, domain, created, registrar); err != nil {
			l.logger.Warn("registration cache write failed", "domain", domain, "error", err)
		}
	}

	return l.buildInfo(created, registrar), nil
}

// buildInfo derives the registration record from a known creation date.
func (l *Lookup) buildInfo(created time.Time, registrar string) model.RegistrationInfo {
	days := int(l.now().Sub(created).Hours() / 24)
	return model.RegistrationInfo{
		DaysOld:     &days,
		IsNewDomain: days < newDomainThresholdDays,
		Registrar:   registrar,
		CreatedAt:   created,
	}
}

// creationDate extracts the registration creation date from parsed WHOIS
// data, falling back to the known raw layouts when the parser could not
// interpret the date itself.
func creationDate(parsed whoisparser.WhoisInfo) (time.Time, error) {
	if parsed.Domain == nil {
		return time.Time{}, ErrNoCreationDate
	}
	if parsed.Domain.CreatedDateInTime != nil {
		return *parsed.Domain.CreatedDateInTime, nil
	}

	raw := strings.TrimSpace(parsed.Domain.CreatedDate)
	if raw == "" {
		return time.Time{}, ErrNoCreationDate
	}
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", ErrNoCreationDate, raw)
}

// registrableDomain returns the eTLD+1 of host, or host itself when the
// public suffix list cannot derive one (e.g. bare TLDs, local names).
func registrableDomain(host string) string {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// stripPort removes a trailing :port from host if present.
func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
