package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBufferSize = 512
	minBufferSize     = 64
	maxBufferSize     = 1048576
)

type config struct {
	host string
	port string

	bufferSize     int
	maxMessageSize int
	readTimeout    time.Duration

	serverName string

	domain         string
	tlsEnabled     bool
	tlsPort        string
	tlsStoragePath string
	acmeEmail      string
	cfAPIToken     string
	acmeStaging    bool

	metricsEnabled bool
	metricsPort    string
}

func parse() (*config, error) {
	host := getenv("HOST", "127.0.0.1")
	port := getenv("PORT", "8080")

	bufferSize := parseBufferSize()
	maxMessageSize, err := parseMaxMessageSize(bufferSize)
	if err != nil {
		return nil, err
	}

	readTimeout, err := parseReadTimeout()
	if err != nil {
		return nil, err
	}

	serverName := getenv("SERVER_NAME", "")

	domain := getenv("DOMAIN", "localhost")
	tlsEnabled := getenvBool("TLS_ENABLED", false)
	tlsPort := getenv("TLS_PORT", "8443")
	tlsStoragePath := getenv("TLS_STORAGE_PATH", "certs/tls/")
	acmeEmail := getenv("ACME_EMAIL", "admin@"+domain)
	acmeStaging := getenvBool("ACME_STAGING", false)

	cfToken := getenv("CF_API_TOKEN", "")
	if tlsEnabled && cfToken == "" {
		return nil, fmt.Errorf("CF_API_TOKEN is required when TLS is enabled")
	}

	metricsEnabled := getenvBool("METRICS_ENABLED", false)
	metricsPort := getenv("METRICS_PORT", "9100")

	return &config{
		host:           host,
		port:           port,
		bufferSize:     bufferSize,
		maxMessageSize: maxMessageSize,
		readTimeout:    readTimeout,
		serverName:     serverName,
		domain:         domain,
		tlsEnabled:     tlsEnabled,
		tlsPort:        tlsPort,
		tlsStoragePath: tlsStoragePath,
		acmeEmail:      acmeEmail,
		cfAPIToken:     cfToken,
		acmeStaging:    acmeStaging,
		metricsEnabled: metricsEnabled,
		metricsPort:    metricsPort,
	}, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func parseBufferSize() int {
	raw := getenv("BUFFER_SIZE", strconv.Itoa(defaultBufferSize))
	size, err := strconv.Atoi(raw)
	if err != nil || size < minBufferSize || size > maxBufferSize {
		log.Printf("Invalid BUFFER_SIZE, falling back to %d", defaultBufferSize)
		return defaultBufferSize
	}
	return size
}

func parseMaxMessageSize(bufferSize int) (int, error) {
	raw := getenv("MAX_MESSAGE_SIZE", "65536")
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid MAX_MESSAGE_SIZE: %w", err)
	}
	if size < bufferSize {
		return 0, fmt.Errorf("MAX_MESSAGE_SIZE (%d) must not be smaller than BUFFER_SIZE (%d)", size, bufferSize)
	}
	return size, nil
}

func parseReadTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(getenv("READ_TIMEOUT", "5s"))
	if err != nil {
		return 0, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("READ_TIMEOUT must be positive")
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}
