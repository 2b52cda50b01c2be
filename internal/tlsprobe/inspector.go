package tlsprobe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// defaultPort is the standard HTTPS port.
const defaultPort = "443"

// ErrNoHost is returned when there is no host to inspect.
var ErrNoHost = errors.New("no host to inspect")

// Inspector performs TLS certificate inspection with a bounded connect
// timeout. Chain verification uses the system trusted root store.
type Inspector struct {
	// timeout bounds the connect plus handshake phase.
	timeout time.Duration

	// port is the TCP port to connect to, "443" unless overridden.
	port string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithTimeout sets the handshake timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(i *Inspector) {
		i.timeout = timeout
	}
}

// WithPort sets the TCP port to connect to. Used by tests that point the
// inspector at a local TLS listener.
func WithPort(port string) Option {
	return func(i *Inspector) {
		i.port = port
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// NewInspector creates a TLS inspector with the default 10 second timeout.
func NewInspector(opts ...Option) *Inspector {
	i := &Inspector{
		timeout: config.DefaultTLSTimeout,
		port:    defaultPort,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Inspect connects to host on the HTTPS port, verifies the certificate
// chain against the trusted root store, and extracts the leaf
// certificate's issuer, subject, and expiry. A certificate whose issuer
// equals its subject is reported as self-signed.
//
// Any failure (timeout, refused connection, handshake error, untrusted
// chain) is returned as an error; the collector converts it into the
// conservative degraded record (valid=false, self-signed=true).
func (i *Inspector) Inspect(ctx context.Context, host string) (model.TLSInfo, error) {
	if host == "" {
		return model.TLSInfo{}, ErrNoHost
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: i.timeout},
		Config:    &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, i.port))
	if err != nil {
		return model.TLSInfo{}, fmt.Errorf("tls handshake with %s failed: %w", host, err)
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return model.TLSInfo{}, errors.New("connection is not a TLS connection")
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return model.TLSInfo{}, errors.New("no peer certificates presented")
	}

	leaf := certs[0]
	issuer := leaf.Issuer.String()
	subject := leaf.Subject.String()

	i.logger.Debug("certificate inspected",
		"host", host,
		"issuer", issuer,
		"expiry", leaf.NotAfter,
	)

	return model.TLSInfo{
		Valid:      true,
		SelfSigned: issuer == subject,
		Issuer:     issuer,
		Subject:    subject,
		Expiry:     leaf.NotAfter,
	}, nil
}
