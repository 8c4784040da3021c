package mbd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for mbd.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Modules ModulesConfig `toml:"modules"`
}

// ServerConfig defines shared server settings.
type ServerConfig struct {
	Broker    string     `toml:"broker"`
	Identity  string     `toml:"identity"`
	TopicBase string     `toml:"topic_base"`
	LogLevel  string     `toml:"log_level"`
	LogFormat string     `toml:"log_format"`
	LogOutput string     `toml:"log_output"`
	Daemonize bool       `toml:"daemonize"`
	TLS       TLSConfig  `toml:"tls"`
	Auth      AuthConfig `toml:"auth"`
}

// TLSConfig holds TLS paths for MQTT.
type TLSConfig struct {
	CA   string `toml:"ca"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

// AuthConfig holds MQTT auth credentials.
type AuthConfig struct {
	User string `toml:"user"`
	Pass string `toml:"pass"`
}

// ModulesConfig holds module configurations.
type ModulesConfig struct {
	MusicTool    MusicToolConfig    `toml:"music_tool"`
	EmbeddedMQTT EmbeddedMQTTConfig `toml:"embedded_mqtt"`
}

// MusicToolConfig configures the music tool module.
type MusicToolConfig struct {
	Enabled          bool   `toml:"enabled"`
	NodeID           string `toml:"node_id"`
	APIBaseURL       string `toml:"api_base_url"`
	APIToken         string `toml:"api_token"`
	SignParam        string `toml:"sign_param"`
	Server           string `toml:"server"`
	TimeoutMS        int64  `toml:"timeout_ms"`
	ResolveTimeoutMS int64  `toml:"resolve_timeout_ms"`
}

// EmbeddedMQTTConfig configures the embedded MQTT broker.
type EmbeddedMQTTConfig struct {
	Enabled        bool   `toml:"enabled"`
	Listen         string `toml:"listen"`
	AllowAnonymous bool   `toml:"allow_anonymous"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TLSCA          string `toml:"tls_ca"`
	TLSCert        string `toml:"tls_cert"`
	TLSKey         string `toml:"tls_key"`
}

// LoadConfig loads a config file from path and applies environment
// overrides on top.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// ApplyEnvOverrides lets deployment environments override the upstream
// music API settings without editing the config file. The token in
// particular usually arrives through the environment.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MUSIC_API_BASE_URL"); v != "" {
		cfg.Modules.MusicTool.APIBaseURL = v
	}
	if v := os.Getenv("MUSIC_API_TOKEN"); v != "" {
		cfg.Modules.MusicTool.APIToken = v
	}
	if v := os.Getenv("MUSIC_SIGN_PARAM"); v != "" {
		cfg.Modules.MusicTool.SignParam = v
	}
}

// DefaultConfigPath returns the default config location.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mb", "mbd.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mb", "mbd.toml"), nil
}
