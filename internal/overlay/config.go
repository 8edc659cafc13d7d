package overlay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"siege-tracker/internal/capture"
	"siege-tracker/internal/constants"

	"github.com/spf13/viper"
)

type Tesseract struct {
	Binary   string `mapstructure:"binary"`
	Language string `mapstructure:"language"`
}

type Config struct {
	BackendURL string         `mapstructure:"backend_url"`
	Platform   string         `mapstructure:"platform"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Region     capture.Region `mapstructure:"region"`
	Tesseract  Tesseract      `mapstructure:"tesseract"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://localhost:4000")
	v.SetDefault("platform", constants.DefaultPlatform)
	v.SetDefault("timeout", constants.RequestTimeout)
	v.SetDefault("region.x", 0)
	v.SetDefault("region.y", 0)
	v.SetDefault("region.width", 1920)
	v.SetDefault("region.height", 1080)
	v.SetDefault("tesseract.binary", "tesseract")
	v.SetDefault("tesseract.language", "eng")
}

// LoadConfig reads overlay.yaml from path, or from the working directory when
// path is empty, and lets OVERLAY_* variables override it
// (OVERLAY_REGION_WIDTH for region.width).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("overlay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read overlay config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode overlay config: %w", err)
	}

	if cfg.BackendURL == "" {
		return nil, errors.New("backend_url is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	return &cfg, nil
}
