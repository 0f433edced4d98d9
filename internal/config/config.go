// Package config holds the server's own tuning knobs (listen address,
// TLS credentials, view radius, idle timeout, debug overrides) as a
// Config/DefaultConfig/Validate triad.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is the server's TOML-backed configuration.
type Config struct {
	// ListenAddr is the UDP address the QUIC listener binds, e.g.
	// "0.0.0.0:5520".
	ListenAddr string `toml:"listenAddr"`

	// CertFile/KeyFile are an optional file-backed TLS certificate
	// pair. Unless both are set, the server falls back to a runtime
	// self-signed certificate (server.NewSelfSignedCertSource).
	CertFile string `toml:"certFile"`
	KeyFile  string `toml:"keyFile"`

	// ViewRadius is the join sequence's terrain-streaming radius in
	// chunks (6 by default, but the knob is exposed for
	// operators who want a smaller/larger window on constrained links).
	ViewRadius int32 `toml:"viewRadius"`

	// IdleTimeoutSeconds tears down a connection the transport has not
	// heard from in this long. 30 seconds by default.
	IdleTimeoutSeconds int32 `toml:"idleTimeoutSeconds"`

	// MaxPlayers and ServerName/MOTD populate ServerInfo.
	MaxPlayers int32  `toml:"maxPlayers"`
	ServerName string `toml:"serverName"`
	MOTD       string `toml:"motd"`

	// AssetArchivePath is the path of the ZIP archive the asset store
	// reads from.
	AssetArchivePath string `toml:"assetArchivePath"`

	// WorldSettingsPath optionally points at a YAML world settings
	// file (spawn point, terrain layers, default tint); empty means
	// use the built-in defaults.
	WorldSettingsPath string `toml:"worldSettingsPath"`

	// RequireAuth gates the awaiting_auth phase transition: when
	// false, every Connect with an identity token is treated the same
	// as one without, skipping the Session Service round trip.
	RequireAuth bool `toml:"requireAuth"`
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:         "0.0.0.0:5520",
		ViewRadius:         6,
		IdleTimeoutSeconds: 30,
		MaxPlayers:         20,
		ServerName:         "Zytale Server",
		MOTD:               "A Zytale server core",
		AssetArchivePath:   "assets.zip",
		RequireAuth:        false,
	}
}

// Validate clamps out-of-range values to sane defaults rather than
// failing outright: unreasonable values get nudged back into range
// instead of the server refusing to start over a typo.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = "0.0.0.0:5520"
	}
	if c.ViewRadius <= 0 || c.ViewRadius > 32 {
		c.ViewRadius = 6
	}
	if c.IdleTimeoutSeconds <= 0 {
		c.IdleTimeoutSeconds = 30
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = 20
	}
	if c.AssetArchivePath == "" {
		return fmt.Errorf("config: assetArchivePath must be set")
	}
	return nil
}

// Load reads and parses a TOML config file, then validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
