package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()

	v := viper.New()
	v.Set("jwt.secret", "test-secret")
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	require.Equal(t, "info", cfg.App.LogLevel)
	require.Equal(t, 8080, cfg.Host.Port)
	require.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	require.Equal(t, "bcrypt", cfg.Security.HashAlgorithm)
	require.Equal(t, 10, cfg.Security.BcryptCost)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "local", cfg.Storage.Type)
	require.Equal(t, "uploads", cfg.Storage.Local.Path)
	require.Equal(t, int64(500<<20), cfg.Upload.Video.MaxSize)
	require.Equal(t, int64(50<<20), cfg.Upload.Presentation.MaxSize)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(viper.New())
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Overrides(t *testing.T) {
	v := newViper(t)
	v.Set("jwt.expiry", "2h")
	v.Set("upload.video.max_size", 10)
	v.Set("host.cors_origins", []string{"https://a.example", "https://b.example"})

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	require.Equal(t, int64(10<<20), cfg.Upload.Video.MaxSize)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Host.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"log level", "app.log_level", "verbose"},
		{"port", "host.port", 0},
		{"hash algorithm", "security.hash_algorithm", "md5"},
		{"db driver", "database.driver", "mongodb"},
		{"storage type", "storage.type", "ftp"},
		{"video size", "upload.video.max_size", 0},
		{"presentation size", "upload.presentation.max_size", -1},
		{"ssl without cert", "host.ssl.enabled", true},
		{"turnstile without secret", "cloudflare.turnstile.enabled", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			require.Error(t, err)
		})
	}
}

func TestLoad_S3RequiresCredentials(t *testing.T) {
	v := newViper(t)
	v.Set("storage.type", "s3")

	_, err := Load(v)
	require.EqualError(t, err, "bucket can't be empty")

	v.Set("storage.s3.bucket", "media")
	v.Set("storage.s3.access_key_id", "id")
	v.Set("storage.s3.secret_access_key", "key")

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "media", cfg.Storage.S3.Bucket)
}
