// Package config provides configuration management for tabnap with Viper
// integration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/tabnap/tabnap/internal/logging"
)

// Config is the complete daemon configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
	Bridge   BridgeConfig   `mapstructure:"bridge" yaml:"bridge" json:"bridge"`
	Watchdog WatchdogConfig `mapstructure:"watchdog" yaml:"watchdog" json:"watchdog"`
	Reload   ReloadConfig   `mapstructure:"reload" yaml:"reload" json:"reload"`
	Timers   TimersConfig   `mapstructure:"timers" yaml:"timers" json:"timers"`
}

// DatabaseConfig holds durable-flag storage configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// BridgeConfig holds the extension bridge listener configuration.
type BridgeConfig struct {
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr" json:"listen_addr"`
	// ExtensionOrigin is the extension's own served origin; privileged
	// control messages must come from it.
	ExtensionOrigin string `mapstructure:"extension_origin" yaml:"extension_origin" json:"extension_origin"`
}

// WatchdogConfig bounds the bulk-operation flag lifetime.
type WatchdogConfig struct {
	Ceiling time.Duration `mapstructure:"ceiling" yaml:"ceiling" json:"ceiling"`
}

// ReloadConfig bounds the batched favicon reload.
type ReloadConfig struct {
	BatchSize       int           `mapstructure:"batch_size" yaml:"batch_size" json:"batch_size"`
	PerTabDelay     time.Duration `mapstructure:"per_tab_delay" yaml:"per_tab_delay" json:"per_tab_delay"`
	InterBatchDelay time.Duration `mapstructure:"inter_batch_delay" yaml:"inter_batch_delay" json:"inter_batch_delay"`
}

// TimersConfig holds the periodic trigger intervals.
type TimersConfig struct {
	SuspensionScan  time.Duration `mapstructure:"suspension_scan" yaml:"suspension_scan" json:"suspension_scan"`
	Cleanup         time.Duration `mapstructure:"cleanup" yaml:"cleanup" json:"cleanup"`
	Reconcile       time.Duration `mapstructure:"reconcile" yaml:"reconcile" json:"reconcile"`
	SessionAutosave time.Duration `mapstructure:"session_autosave" yaml:"session_autosave" json:"session_autosave"`
}

// Manager loads the config file, watches it for changes, and hands out
// the current snapshot.
type Manager struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	config   *Config
	watching bool
	onChange []func(*Config)
}

// NewManager creates a manager reading from the given config file path.
// An empty path uses tabnap.yaml in the current directory.
func NewManager(path string) *Manager {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tabnap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("TABNAP")
	v.AutomaticEnv()
	applyDefaults(v)
	return &Manager{viper: v}
}

// Load reads the config file. A missing file is not an error: defaults
// apply.
func (m *Manager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := new(Config)
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	m.config = cfg
	return cfg, nil
}

// Get returns the current config snapshot, loading defaults if Load was
// never called.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()
	if cfg != nil {
		return cfg
	}
	cfg, _ = m.Load()
	return cfg
}

// OnChange registers a callback invoked with the fresh config after every
// successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Watch starts watching the config file for changes and reloads
// automatically.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", filepath.Base(e.Name)).Msg("config change detected")

		m.mu.Lock()
		cfg := new(Config)
		if err := m.viper.Unmarshal(cfg); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config")
			return
		}
		m.config = cfg
		callbacks := append([]func(*Config){}, m.onChange...)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})

	m.watching = true
}
