// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	seed = pflag.Bool("seed", false, "Replaces all users with the sample accounts and exits")

	validLogLevels      = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes   = []string{"s3", "local"}
	validDBDrivers      = []string{"sqlite", "postgres"}
	validHashAlgorithms = []string{"bcrypt", "argon2id"}
)

var ErrMissingSecret = errors.New("jwt.secret is not set")

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Host       HostConfig       `mapstructure:"host"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Security   SecurityConfig   `mapstructure:"security"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`

	// Seed is only set from the command line
	Seed bool `mapstructure:"-"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type HostConfig struct {
	Port        int       `mapstructure:"port"`
	Domain      string    `mapstructure:"domain"`
	CORSOrigins []string  `mapstructure:"cors_origins"`
	SSL         SSLConfig `mapstructure:"ssl"`
}

type SSLConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CertificatePath    string `mapstructure:"certificate_path"`
	CertificateKeyPath string `mapstructure:"certificate_key_path"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

type SecurityConfig struct {
	HashAlgorithm             string        `mapstructure:"hash_algorithm"`
	BcryptCost                int           `mapstructure:"bcrypt_cost"`
	RateLimit                 int           `mapstructure:"rate_limit"` // Requests per second per IP, 0 disables it
	RevocationCleanupInterval time.Duration `mapstructure:"revocation_cleanup_interval"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type StorageConfig struct {
	Type  string             `mapstructure:"type"`
	Local LocalStorageConfig `mapstructure:"local"`
	S3    S3StorageConfig    `mapstructure:"s3"`
}

type LocalStorageConfig struct {
	Path string `mapstructure:"path"`
}

type S3StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	// Endpoint is only needed for S3 compatible providers like Cloudflare R2 or MinIO
	Endpoint string `mapstructure:"endpoint"`
}

type UploadConfig struct {
	Video        UploadLimit `mapstructure:"video"`
	Presentation UploadLimit `mapstructure:"presentation"`
}

// UploadLimit.MaxSize is read in MiB and converted to bytes by Load
type UploadLimit struct {
	MaxSize int64 `mapstructure:"max_size"`
}

type CloudflareConfig struct {
	Turnstile TurnstileConfig `mapstructure:"turnstile"`
}

type TurnstileConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	SecretToken string `mapstructure:"secret_token"`
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup parses the command line, reads config.toml (if there is one) and the
// environment and returns the validated config. Function will return an error
// if something is critically wrong and the application can't run because of
// that.
func Setup() (*Config, error) {
	pflag.Parse()

	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	bindEnvs(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	cfg, err := Load(v)
	if err != nil {
		if errors.Is(err, ErrMissingSecret) {
			fmt.Println("WARNING: You haven't set a JWT secret. Please set it as the JWT_SECRET environment variable or in the config.toml file.\nA random one you can use:\n\n" + genSecret())
		}
		return nil, err
	}

	cfg.Seed = *seed
	return cfg, nil
}

//
// ENVS
//

func bindEnvs(v *viper.Viper) {
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT")
	v.BindEnv("host.domain", "HOST_DOMAIN")
	v.BindEnv("host.cors_origins", "HOST_CORS")

	v.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	v.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	v.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiry", "JWT_EXPIRY")

	v.BindEnv("security.hash_algorithm", "SECURITY_HASH_ALGORITHM")
	v.BindEnv("security.bcrypt_cost", "SECURITY_BCRYPT_COST")
	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	v.BindEnv("security.revocation_cleanup_interval", "SECURITY_REVOCATION_CLEANUP_INTERVAL")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")

	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.local.path", "STORAGE_LOCAL_PATH")
	v.BindEnv("storage.s3.bucket", "BUCKET")
	v.BindEnv("storage.s3.region", "REGION")
	v.BindEnv("storage.s3.access_key_id", "ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "SECRET_ACCESS_KEY")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")

	v.BindEnv("upload.video.max_size", "UPLOAD_VIDEO_MAX_SIZE")
	v.BindEnv("upload.presentation.max_size", "UPLOAD_PRESENTATION_MAX_SIZE")

	v.BindEnv("cloudflare.turnstile.enabled", "TURNSTILE_ENABLED")
	v.BindEnv("cloudflare.turnstile.secret_token", "TURNSTILE_SECRET_TOKEN")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("jwt.expiry", 24*time.Hour)

	v.SetDefault("security.hash_algorithm", "bcrypt")
	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("security.rate_limit", 20)
	v.SetDefault("security.revocation_cleanup_interval", time.Hour)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local.path", "uploads")

	v.SetDefault("upload.video.max_size", 500)
	v.SetDefault("upload.presentation.max_size", 50)

	v.SetDefault("cloudflare.turnstile.enabled", false)
}

// Load applies the defaults to v, decodes it and validates the result
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config, %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Upload.Video.MaxSize <<= 20
	cfg.Upload.Presentation.MaxSize <<= 20

	return &cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.Host.SSL.Enabled {
		if c.Host.SSL.CertificatePath == "" {
			return errors.New("no ssl certificate path provided")
		}

		if c.Host.SSL.CertificateKeyPath == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}

	if c.JWT.Expiry <= 0 {
		return errors.New("jwt.expiry must be bigger than 0")
	}

	if !slices.Contains(validHashAlgorithms, c.Security.HashAlgorithm) {
		return errors.New("invalid hash algorithm provided")
	}

	if c.Security.RateLimit < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if c.Security.RevocationCleanupInterval <= 0 {
		return errors.New("security.revocation_cleanup_interval must be bigger than 0")
	}

	if !slices.Contains(validDBDrivers, c.Database.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.Database.DSN == "" {
		return errors.New("database.dsn can't be empty")
	}

	if !slices.Contains(validStorageTypes, c.Storage.Type) {
		return errors.New("invalid storage type provided")
	}

	switch c.Storage.Type {
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
		if c.Storage.S3.AccessKeyID == "" {
			return errors.New("access key id can't be empty")
		}
		if c.Storage.S3.SecretAccessKey == "" {
			return errors.New("secret access key can't be empty")
		}
	case "local":
		if c.Storage.Local.Path == "" {
			return errors.New("storage.local.path can't be empty")
		}
	}

	if c.Upload.Video.MaxSize <= 0 {
		return errors.New("upload.video.max_size must be bigger than 0")
	}

	if c.Upload.Presentation.MaxSize <= 0 {
		return errors.New("upload.presentation.max_size must be bigger than 0")
	}

	if c.Cloudflare.Turnstile.Enabled && c.Cloudflare.Turnstile.SecretToken == "" {
		return errors.New("turnstile secret token is missing")
	}

	return nil
}
