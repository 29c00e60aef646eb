package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_DefaultsWithMissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "registrar", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "registrar.app", cfg.JWT.Issuer)
	assert.Equal(t, "15m", cfg.Attendance.LateThreshold)
	assert.Equal(t, 256, cfg.Attendance.QRSize)
	assert.Equal(t, "./uploads", cfg.Storage.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxFileSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
database:
  host: db.internal
  dbname: registrar_prod
attendance:
  late_threshold: "20m"
  qr_size: 512
logging:
  level: warn
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "registrar_prod", cfg.Database.DBName)
	assert.Equal(t, "20m", cfg.Attendance.LateThreshold)
	assert.Equal(t, 512, cfg.Attendance.QRSize)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Untouched sections keep their defaults
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("STORAGE_MAX_FILE_SIZE", "1048576")

	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxFileSize)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	// An empty value behaves the same as an unset secret
	t.Setenv("JWT_SECRET", "")

	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfig_RejectsBadDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name string
		yaml string
	}{
		{name: "access expiration", yaml: "jwt:\n  access_token_expiration: soon\n"},
		{name: "refresh expiration", yaml: "jwt:\n  refresh_token_expiration: never\n"},
		{name: "late threshold", yaml: "attendance:\n  late_threshold: quarter-hour\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(writeConfigFile(t, "server: [not a map"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "registrar"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "registrar"
	cfg.Database.SSLMode = "require"

	assert.Equal(t, "postgres://registrar:pw@localhost:5432/registrar?sslmode=require", cfg.GetPostgresConnectionString())

	// Empty sslmode falls back to disable
	cfg.Database.SSLMode = ""
	assert.Equal(t, "postgres://registrar:pw@localhost:5432/registrar?sslmode=disable", cfg.GetPostgresConnectionString())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("REGISTRAR_TEST_STR", "hello")
	assert.Equal(t, "hello", GetEnv("REGISTRAR_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("REGISTRAR_TEST_MISSING", "fallback"))

	t.Setenv("REGISTRAR_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvAsInt("REGISTRAR_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvAsInt("REGISTRAR_TEST_MISSING", 7))

	t.Setenv("REGISTRAR_TEST_BOOL", "yes")
	assert.True(t, GetEnvAsBool("REGISTRAR_TEST_BOOL", false))
	t.Setenv("REGISTRAR_TEST_BOOL", "0")
	assert.False(t, GetEnvAsBool("REGISTRAR_TEST_BOOL", true))
	t.Setenv("REGISTRAR_TEST_BOOL", "maybe")
	assert.True(t, GetEnvAsBool("REGISTRAR_TEST_BOOL", true))

	t.Setenv("REGISTRAR_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("REGISTRAR_TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, GetEnvAsDuration("REGISTRAR_TEST_MISSING", time.Minute))
}
