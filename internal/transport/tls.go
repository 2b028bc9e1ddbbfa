package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"minihttp/internal/config"

	"github.com/caddyserver/certmagic"
	"github.com/fsnotify/fsnotify"
	"github.com/libdns/cloudflare"
)

// renewalWindow is how close to expiry a user certificate may be before
// CertMagic takes over.
const renewalWindow = 30 * 24 * time.Hour

type tlsManager struct {
	config config.Config

	certPath    string
	keyPath     string
	storagePath string

	mu           sync.RWMutex
	userCert     *tls.Certificate
	magic        *certmagic.Config
	useCertMagic bool
}

// NewTLSConfig serves the user-provided certificate pair from
// TLS_STORAGE_PATH when it is valid for DOMAIN, and otherwise obtains one
// through CertMagic with a Cloudflare DNS-01 challenge.
func NewTLSConfig(ctx context.Context, cfg config.Config) (*tls.Config, error) {
	tm := newTLSManager(cfg)
	if err := tm.initialize(ctx); err != nil {
		return nil, err
	}
	return tm.tlsConfig(), nil
}

func newTLSManager(cfg config.Config) *tlsManager {
	cleanBase := filepath.Clean(cfg.TLSStoragePath())

	return &tlsManager{
		config:      cfg,
		certPath:    filepath.Join(cleanBase, "cert.pem"),
		keyPath:     filepath.Join(cleanBase, "privkey.pem"),
		storagePath: filepath.Join(cleanBase, "certmagic"),
	}
}

func (tm *tlsManager) initialize(ctx context.Context) error {
	if tm.userCertsExistAndValid() {
		log.Printf("Using user-provided certificates from %s and %s", tm.certPath, tm.keyPath)
		if err := tm.loadUserCerts(); err != nil {
			return fmt.Errorf("failed to load user certificates: %w", err)
		}
		return tm.startCertWatcher(ctx)
	}

	log.Printf("User certificates missing or don't cover %s, using CertMagic", tm.config.Domain())
	if err := tm.initCertMagic(ctx); err != nil {
		return fmt.Errorf("failed to initialize CertMagic: %w", err)
	}
	return nil
}

func (tm *tlsManager) userCertsExistAndValid() bool {
	if !tm.certFilesExist() {
		return false
	}
	return validateCertDomain(tm.certPath, tm.config.Domain())
}

func (tm *tlsManager) certFilesExist() bool {
	if _, err := os.Stat(tm.certPath); os.IsNotExist(err) {
		log.Printf("Certificate file not found: %s", tm.certPath)
		return false
	}
	if _, err := os.Stat(tm.keyPath); os.IsNotExist(err) {
		log.Printf("Key file not found: %s", tm.keyPath)
		return false
	}
	return true
}

func (tm *tlsManager) loadUserCerts() error {
	cert, err := tls.LoadX509KeyPair(tm.certPath, tm.keyPath)
	if err != nil {
		return err
	}

	tm.mu.Lock()
	tm.userCert = &cert
	tm.mu.Unlock()

	log.Printf("Loaded user certificates successfully")
	return nil
}

func (tm *tlsManager) initCertMagic(ctx context.Context) error {
	if tm.config.CFAPIToken() == "" {
		return fmt.Errorf("CF_API_TOKEN is required for automatic certificate generation")
	}
	if err := os.MkdirAll(tm.storagePath, 0700); err != nil {
		return fmt.Errorf("failed to create cert storage directory: %w", err)
	}

	magic := tm.newCertMagicConfig()
	domains := []string{tm.config.Domain()}
	log.Printf("Requesting certificates for: %v", domains)
	if err := magic.ManageSync(ctx, domains); err != nil {
		return fmt.Errorf("failed to obtain certificates: %w", err)
	}

	tm.mu.Lock()
	tm.magic = magic
	tm.useCertMagic = true
	tm.mu.Unlock()
	return nil
}

func (tm *tlsManager) newCertMagicConfig() *certmagic.Config {
	var magic *certmagic.Config
	cache := certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(certmagic.Certificate) (*certmagic.Config, error) {
			return magic, nil
		},
	})

	magic = certmagic.New(cache, certmagic.Config{
		Storage: &certmagic.FileStorage{Path: tm.storagePath},
	})

	issuer := certmagic.NewACMEIssuer(magic, certmagic.ACMEIssuer{
		Email:  tm.config.ACMEEmail(),
		Agreed: true,
		DNS01Solver: &certmagic.DNS01Solver{
			DNSManager: certmagic.DNSManager{
				DNSProvider: &cloudflare.Provider{APIToken: tm.config.CFAPIToken()},
			},
		},
	})
	if tm.config.ACMEStaging() {
		issuer.CA = certmagic.LetsEncryptStagingCA
		log.Printf("Using Let's Encrypt staging server")
	} else {
		issuer.CA = certmagic.LetsEncryptProductionCA
	}
	magic.Issuers = []certmagic.Issuer{issuer}

	return magic
}

func (tm *tlsManager) tlsConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: tm.getCertificate,
		MinVersion:     tls.VersionTLS12,
		ClientAuth:     tls.NoClientCert,
	}
}

func (tm *tlsManager) getCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if tm.useCertMagic {
		return tm.magic.GetCertificate(hello)
	}
	if tm.userCert == nil {
		return nil, fmt.Errorf("no certificate available")
	}
	return tm.userCert, nil
}

func validateCertDomain(certPath, domain string) bool {
	cert, err := loadAndParseCertificate(certPath)
	if err != nil {
		return false
	}
	if !isCertificateValid(cert, time.Now()) {
		return false
	}
	if !certCoversDomain(cert, domain) {
		log.Printf("Certificate does not cover domain: %s", domain)
		return false
	}
	return true
}

func loadAndParseCertificate(certPath string) (*x509.Certificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		log.Printf("Failed to read certificate: %v", err)
		return nil, err
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		log.Printf("Failed to decode PEM block from certificate")
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		log.Printf("Failed to parse certificate: %v", err)
		return nil, err
	}
	return cert, nil
}

func isCertificateValid(cert *x509.Certificate, now time.Time) bool {
	if now.After(cert.NotAfter) {
		log.Printf("Certificate has expired (NotAfter: %v)", cert.NotAfter)
		return false
	}
	if now.Add(renewalWindow).After(cert.NotAfter) {
		log.Printf("Certificate expiring soon (NotAfter: %v)", cert.NotAfter)
		return false
	}
	return true
}

func certCoversDomain(cert *x509.Certificate, domain string) bool {
	if cert.Subject.CommonName == domain {
		return true
	}
	for _, name := range cert.DNSNames {
		if name == domain {
			return true
		}
	}
	return false
}

type certWatcher struct {
	tm      *tlsManager
	watcher *fsnotify.Watcher
}

func (tm *tlsManager) startCertWatcher(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create certificate watcher: %w", err)
	}
	if err = w.Add(filepath.Dir(tm.certPath)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(tm.certPath), err)
	}

	cw := &certWatcher{tm: tm, watcher: w}
	go cw.watch(ctx)
	return nil
}

func (cw *certWatcher) watch(ctx context.Context) {
	defer func() {
		if err := cw.watcher.Close(); err != nil {
			log.Printf("Failed to close certificate watcher: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			if cw.handleCertificateChange(ctx) {
				return
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Certificate watcher error: %v", err)
		}
	}
}

func (cw *certWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == cw.tm.certPath || name == cw.tm.keyPath
}

// handleCertificateChange reports whether watching should stop.
func (cw *certWatcher) handleCertificateChange(ctx context.Context) bool {
	log.Printf("Certificate files changed, reloading...")

	if !validateCertDomain(cw.tm.certPath, cw.tm.config.Domain()) {
		log.Printf("New certificates are not usable, switching to CertMagic")
		if err := cw.tm.initCertMagic(ctx); err != nil {
			log.Printf("Failed to initialize CertMagic: %v", err)
			return false
		}
		return true
	}

	if err := cw.tm.loadUserCerts(); err != nil {
		log.Printf("Failed to reload certificates: %v", err)
		return false
	}
	log.Printf("Certificates reloaded successfully")
	return false
}
