package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults for a publisher running on the same machine.
const (
	DefaultHost        = "127.0.0.1"
	DefaultEventPort   = 9999
	DefaultLogPort     = 9997
	DefaultRequestPort = 9998
	DefaultStrategy    = "animated"
	DefaultLogLevel    = "info"
)

// tomlConfig mirrors the TOML config structure.
type tomlConfig struct {
	Publisher struct {
		Host        string   `toml:"host"`
		EventPort   int      `toml:"event_port"`
		LogPort     int      `toml:"log_port"`
		RequestPort int      `toml:"request_port"`
		EventTypes  []string `toml:"event_types"`
	} `toml:"publisher"`
	Transport struct {
		Network  *bool  `toml:"network"`
		SpoolDir string `toml:"spool_dir"`
	} `toml:"transport"`
	Navigator struct {
		Strategy string `toml:"strategy"`
	} `toml:"navigator"`
	Gestures map[string]string `toml:"gestures"`
	Log      struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Publisher: PublisherConfig{
			Host:        DefaultHost,
			EventPort:   DefaultEventPort,
			LogPort:     DefaultLogPort,
			RequestPort: DefaultRequestPort,
		},
		Transport: TransportConfig{Network: true},
		Navigator: NavigatorConfig{Strategy: DefaultStrategy},
		Gestures:  map[string]string{},
		Log:       LogConfig{Level: DefaultLogLevel},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath(appName string) string {
	if p := os.Getenv("GESTURENAV_CONFIG"); p != "" {
		return p
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, "config.toml")
}

// ReadConfigFile reads the TOML config over the defaults. A missing file is
// not an error. GESTURENAV_LOG_LEVEL and GESTURENAV_HOST override the file.
func ReadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	var tc tomlConfig
	meta, err := toml.DecodeFile(path, &tc)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if tc.Publisher.Host != "" {
		cfg.Publisher.Host = tc.Publisher.Host
	}
	cfg.Publisher.EventPort = orDefault(tc.Publisher.EventPort, DefaultEventPort)
	cfg.Publisher.LogPort = orDefault(tc.Publisher.LogPort, DefaultLogPort)
	cfg.Publisher.RequestPort = orDefault(tc.Publisher.RequestPort, DefaultRequestPort)
	cfg.Publisher.EventTypes = tc.Publisher.EventTypes

	if tc.Transport.Network != nil {
		cfg.Transport.Network = *tc.Transport.Network
	}
	cfg.Transport.SpoolDir = expandHome(tc.Transport.SpoolDir)

	if tc.Navigator.Strategy != "" {
		cfg.Navigator.Strategy = tc.Navigator.Strategy
	}
	for gesture, cmd := range tc.Gestures {
		cfg.Gestures[gesture] = cmd
	}
	if tc.Log.Level != "" {
		cfg.Log.Level = tc.Log.Level
	}
	cfg.Log.File = expandHome(tc.Log.File)

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GESTURENAV_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GESTURENAV_HOST"); v != "" {
		cfg.Publisher.Host = v
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
