package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

const (
	BackendStorage = "storage"
	BackendCapture = "capture"
)

type Config struct {
	Backend     string        `mapstructure:"backend"`
	Extensions  []string      `mapstructure:"extensions"`
	From        string        `mapstructure:"from"`
	To          string        `mapstructure:"to"`
	Roots       []string      `mapstructure:"roots"`
	CaptureWait time.Duration `mapstructure:"capture_wait"`
	Verbose     bool          `mapstructure:"verbose"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"backend":      "backend",
	"ext":          "extensions",
	"from":         "from",
	"to":           "to",
	"root":         "roots",
	"capture-wait": "capture_wait",
	"verbose":      "verbose",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendStorage)
	v.SetDefault("extensions", []string{".mp4"})
	v.SetDefault("from", "100APPLE")
	v.SetDefault("to", "100LEICA")
	v.SetDefault("roots", []string{})
	v.SetDefault("capture_wait", 30*time.Second)
	v.SetDefault("verbose", false)
}

// RegisterFlags adds the shared flags to flags and binds them to v.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("backend", BackendStorage, "Device backend: storage or capture")
	flags.StringSlice("ext", []string{".mp4"}, "File extension the storage backend looks for (repeatable)")
	flags.String("from", "100APPLE", "Path segment pattern to redirect from")
	flags.String("to", "100LEICA", "Path segment to redirect to")
	flags.StringSlice("root", nil, "Mount root to search for devices (repeatable)")
	flags.Duration("capture-wait", 30*time.Second, "How long the capture backend waits for a camera")
	flags.BoolP("verbose", "v", false, "Verbose output")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads defaults, the optional config file, CAMDIR_* environment
// variables and bound flags, in increasing priority.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("CAMDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("camdir")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "camdir"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, appErrors.Wrap(appErrors.InvalidConfig, "read config", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, appErrors.Wrap(appErrors.InvalidConfig, "parse config", "", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, appErrors.Wrap(appErrors.InvalidConfig, "validate config", "", err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend != BackendStorage && c.Backend != BackendCapture {
		return fmt.Errorf("unknown backend %q, use %s or %s", c.Backend, BackendStorage, BackendCapture)
	}

	c.From = strings.TrimSpace(c.From)
	c.To = strings.TrimSpace(c.To)
	if c.From == "" || c.To == "" {
		return errors.New("from and to segments are required")
	}
	if strings.Contains(c.From, "/") || strings.Contains(c.To, "/") {
		return errors.New("from and to must be single path segments")
	}
	if _, err := path.Match(c.From, ""); err != nil {
		return fmt.Errorf("invalid from pattern %q: %w", c.From, err)
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		if n := domain.NormalizeExtension(e); n != "" {
			exts = append(exts, n)
		}
	}
	if len(exts) == 0 {
		return errors.New("at least one extension is required")
	}
	c.Extensions = exts

	if c.CaptureWait < 0 {
		return errors.New("capture wait must not be negative")
	}
	return nil
}
