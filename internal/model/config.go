package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RedisConfig points the synced namespace at a Redis server.
// An empty Addr keeps synced settings in the local backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	// Backend is one of "sqlite", "badger" or "memory".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite file or Badger directory.
	Path string `mapstructure:"path" yaml:"path"`

	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// PollerConfig controls the background notification poller.
type PollerConfig struct {
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`
}

// Interval returns the tick period, falling back to five minutes.
func (c PollerConfig) Interval() time.Duration {
	if c.IntervalSec <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.IntervalSec) * time.Second
}

// WalletConfig holds the wallet provider endpoint.
type WalletConfig struct {
	// RPCURL is a JSON-RPC endpoint that answers eth_requestAccounts,
	// such as a local Frame wallet. Empty means no wallet capability.
	RPCURL     string `mapstructure:"rpc_url" yaml:"rpc_url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// AuthConfig holds the fixed admin identity.
type AuthConfig struct {
	AdminIdentity string `mapstructure:"admin_identity" yaml:"admin_identity"`
	AdminSecret   string `mapstructure:"admin_secret" yaml:"admin_secret"`
}

// AlertsConfig configures the optional RabbitMQ alert relay.
type AlertsConfig struct {
	AMQPURL  string `mapstructure:"amqp_url" yaml:"amqp_url"`
	Exchange string `mapstructure:"exchange" yaml:"exchange"`
}

// HTTPConfig configures the local HTTP API.
type HTTPConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Poller  PollerConfig  `mapstructure:"poller" yaml:"poller"`
	Wallet  WalletConfig  `mapstructure:"wallet" yaml:"wallet"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Alerts  AlertsConfig  `mapstructure:"alerts" yaml:"alerts"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ConfigDir returns ~/.config/web3hub, or the working directory when the
// home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "web3hub")
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dir, "web3hub.db"),
			Redis:   RedisConfig{Prefix: "web3hub"},
		},
		Poller: PollerConfig{IntervalSec: 300},
		Wallet: WalletConfig{TimeoutSec: 30},
		Auth: AuthConfig{
			AdminIdentity: "admin",
			AdminSecret:   "admin",
		},
		Alerts: AlertsConfig{Exchange: "alerts"},
		HTTP:   HTTPConfig{Listen: "127.0.0.1:8787"},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "web3hub.log"),
		},
	}
}

func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.prefix", d.Storage.Redis.Prefix)
	v.SetDefault("poller.interval_sec", d.Poller.IntervalSec)
	v.SetDefault("wallet.rpc_url", d.Wallet.RPCURL)
	v.SetDefault("wallet.timeout_sec", d.Wallet.TimeoutSec)
	v.SetDefault("auth.admin_identity", d.Auth.AdminIdentity)
	v.SetDefault("auth.admin_secret", d.Auth.AdminSecret)
	v.SetDefault("alerts.amqp_url", d.Alerts.AMQPURL)
	v.SetDefault("alerts.exchange", d.Alerts.Exchange)
	v.SetDefault("http.listen", d.HTTP.Listen)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with WEB3HUB_ override file values
// (WEB3HUB_WALLET_RPC_URL sets wallet.rpc_url). A missing file yields the
// defaults plus any environment overrides.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WEB3HUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("poller", cfg.Poller)
	v.Set("wallet", cfg.Wallet)
	v.Set("auth", cfg.Auth)
	v.Set("alerts", cfg.Alerts)
	v.Set("http", cfg.HTTP)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
