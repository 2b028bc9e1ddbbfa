package config

import "time"

type Config interface {
	Host() string
	Port() string

	BufferSize() int
	MaxMessageSize() int
	ReadTimeout() time.Duration

	ServerName() string

	Domain() string
	TLSEnabled() bool
	TLSPort() string
	TLSStoragePath() string
	ACMEEmail() string
	CFAPIToken() string
	ACMEStaging() bool

	MetricsEnabled() bool
	MetricsPort() string
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) Host() string               { return c.host }
func (c *config) Port() string               { return c.port }
func (c *config) BufferSize() int            { return c.bufferSize }
func (c *config) MaxMessageSize() int        { return c.maxMessageSize }
func (c *config) ReadTimeout() time.Duration { return c.readTimeout }
func (c *config) ServerName() string         { return c.serverName }
func (c *config) Domain() string             { return c.domain }
func (c *config) TLSEnabled() bool           { return c.tlsEnabled }
func (c *config) TLSPort() string            { return c.tlsPort }
func (c *config) TLSStoragePath() string     { return c.tlsStoragePath }
func (c *config) ACMEEmail() string          { return c.acmeEmail }
func (c *config) CFAPIToken() string         { return c.cfAPIToken }
func (c *config) ACMEStaging() bool          { return c.acmeStaging }
func (c *config) MetricsEnabled() bool       { return c.metricsEnabled }
func (c *config) MetricsPort() string        { return c.metricsPort }
