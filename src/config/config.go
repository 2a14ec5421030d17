// Package config loads the server configuration from an optional TOML file,
// a .env file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/museum-catalog/museum-backend/src/qr"
)

type Config struct {
	ServerHost    string   `toml:"server_host"`
	DBDriver      string   `toml:"db_driver"`
	DBDSN         string   `toml:"db_dsn"`
	JWTSecret     string   `toml:"jwt_secret"`
	PublicBaseURL string   `toml:"public_base_url"`
	MediaRoot     string   `toml:"media_root"`
	MediaURL      string   `toml:"media_url"`
	CORSOrigins   []string `toml:"cors_origins"`
	LogLevel      string   `toml:"log_level"`
	LogFormat     string   `toml:"log_format"`

	QRErrorCorrection string `toml:"qr_error_correction"`
	QRModulePixels    int    `toml:"qr_module_pixels"`

	DriveCredentialsPath string `toml:"drive_credentials_path"`
	DriveCredentialsJSON string `toml:"-"`

	CuratorUsername string `toml:"curator_username"`
	CuratorPassword string `toml:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		ServerHost:    ":8080",
		DBDriver:      "postgres",
		PublicBaseURL: "https://museum-app.com",
		MediaRoot:     "media",
		MediaURL:      "/media",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		LogLevel:          "info",
		LogFormat:         "json",
		QRErrorCorrection: "L",
		QRModulePixels:    qr.DefaultModulePixels,
		CuratorUsername:   "curator",
	}
}

// Load builds the configuration. path may be empty; a missing .env file is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.ServerHost, "SERVER_HOST")
	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DBDSN, "DB_DSN")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&c.MediaRoot, "MEDIA_ROOT")
	setString(&c.MediaURL, "MEDIA_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.QRErrorCorrection, "QR_ERROR_CORRECTION")
	setString(&c.DriveCredentialsPath, "GOOGLE_DRIVE_CREDENTIALS_PATH")
	setString(&c.DriveCredentialsJSON, "GOOGLE_DRIVE_CREDENTIALS_JSON")
	setString(&c.CuratorUsername, "CURATOR_USERNAME")
	setString(&c.CuratorPassword, "CURATOR_PASSWORD")

	if v := os.Getenv("QR_MODULE_PIXELS"); v != "" {
		if px, err := strconv.Atoi(v); err == nil {
			c.QRModulePixels = px
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if _, err := qr.ParseRecoveryLevel(c.QRErrorCorrection); err != nil {
		return err
	}
	if c.QRModulePixels <= 0 {
		return fmt.Errorf("QR_MODULE_PIXELS must be positive, got %d", c.QRModulePixels)
	}
	return nil
}

// NewCodec builds the QR codec described by the configuration.
func (c *Config) NewCodec() (*qr.Codec, error) {
	level, err := qr.ParseRecoveryLevel(c.QRErrorCorrection)
	if err != nil {
		return nil, err
	}
	return qr.NewCodec(c.PublicBaseURL, qr.WithRecoveryLevel(level), qr.WithModulePixels(c.QRModulePixels)), nil
}
