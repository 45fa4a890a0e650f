// Package tls serves the measurement API over HTTPS with certificates
// managed by CertMagic.
package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/caddyserver/certmagic"
	"github.com/libdns/azure"
)

// Config holds TLS configuration.
type Config struct {
	Enabled  bool
	Domains  []string
	Email    string
	CacheDir string
	Staging  bool // Use Let's Encrypt staging environment
	DNS      DNSConfig
}

// DNSConfig holds Azure DNS provider configuration for DNS-01 challenges.
type DNSConfig struct {
	SubscriptionID    string
	ResourceGroupName string
	ClientID          string // User Assigned Managed Identity client ID (optional)
}

func (c Config) validate() error {
	if len(c.Domains) == 0 {
		return fmt.Errorf("TLS enabled but no domains specified")
	}
	if c.Email == "" {
		return fmt.Errorf("TLS enabled but no email specified")
	}
	return nil
}

// Server wraps an HTTP server with automatic TLS. With TLS disabled it
// degrades to plain HTTP so the caller does not need two code paths.
type Server struct {
	config    Config
	handler   http.Handler
	logger    *slog.Logger
	tlsConfig *tls.Config
}

// NewServer creates a server for the handler. When TLS is enabled the
// ACME machinery is configured immediately so certificate problems
// surface at startup rather than on the first request.
func NewServer(cfg Config, handler http.Handler, logger *slog.Logger) (*Server, error) {
	s := &Server{
		config:  cfg,
		handler: handler,
		logger:  logger,
	}
	if !cfg.Enabled {
		return s, nil
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	configureACME(cfg)

	tlsConfig, err := certmagic.TLS(cfg.Domains)
	if err != nil {
		return nil, fmt.Errorf("configuring TLS: %w", err)
	}
	s.tlsConfig = tlsConfig
	return s, nil
}

// configureACME applies the issuance settings on CertMagic's package
// level defaults.
func configureACME(cfg Config) {
	certmagic.DefaultACME.Agreed = true
	certmagic.DefaultACME.Email = cfg.Email

	if cfg.Staging {
		certmagic.DefaultACME.CA = certmagic.LetsEncryptStagingCA
	}
	if cfg.CacheDir != "" {
		certmagic.Default.Storage = &certmagic.FileStorage{Path: cfg.CacheDir}
	}

	// With Azure DNS configured, solve challenges via DNS-01 so the
	// server can sit behind a firewall. Otherwise certmagic falls back
	// to its HTTP-01/TLS-ALPN solvers.
	if cfg.DNS.SubscriptionID != "" {
		certmagic.DefaultACME.DNS01Solver = &certmagic.DNS01Solver{
			DNSManager: certmagic.DNSManager{
				DNSProvider: &azure.Provider{
					SubscriptionId:    cfg.DNS.SubscriptionID,
					ResourceGroupName: cfg.DNS.ResourceGroupName,
					ClientId:          cfg.DNS.ClientID, // Empty = System Assigned Managed Identity
				},
			},
		}
	}
}

// ListenAndServe starts the server, with TLS when enabled.
func (s *Server) ListenAndServe(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !s.config.Enabled {
		s.logger.Info("starting HTTP server (TLS disabled)", "address", addr)
		return server.ListenAndServe()
	}

	s.logger.Info("starting HTTPS server",
		"address", addr,
		"domains", s.config.Domains,
		"dns01", s.config.DNS.SubscriptionID != "",
	)
	server.TLSConfig = s.tlsConfig
	return server.ListenAndServeTLS("", "")
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(_ context.Context) error {
	// CertMagic handles its own cleanup
	return nil
}

// TLSConfig returns the TLS configuration.
func (s *Server) TLSConfig() *tls.Config {
	return s.tlsConfig
}

// ManageCertificates pre-obtains certificates for the configured domains.
func (s *Server) ManageCertificates(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	s.logger.Info("obtaining certificates", "domains", s.config.Domains)
	if err := certmagic.ManageSync(ctx, s.config.Domains); err != nil {
		return fmt.Errorf("managing certificates: %w", err)
	}
	s.logger.Info("certificates obtained successfully")
	return nil
}
