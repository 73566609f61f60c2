package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: "9090"
  allowedOrigins:
    - "http://example.com"
database:
  host: "db"
  user: "poll"
  password: "secret"
  dbname: "pollapp"
jwt:
  secret: "file-secret"
auth:
  adminUsernames: ["root", " Alice "]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFileWithDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, testYAML)

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port, "порт по умолчанию")
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, 20*time.Minute, cfg.JWT.Expiration(), "время жизни токена по умолчанию 20 минут")
	assert.Equal(t, 10, cfg.Auth.RateLimit.MaxRequests)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, testYAML)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRATION_MINUTES", "45")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 45*time.Minute, cfg.JWT.Expiration())
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, `
database:
  host: "db"
  user: "poll"
  dbname: "pollapp"
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoad_EmailEnabledWithoutKey(t *testing.T) {
	path := writeConfig(t, testYAML+`
email:
  enabled: true
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend")
}

func TestAuthConfig_IsAdminUsername(t *testing.T) {
	a := AuthConfig{AdminUsernames: []string{"root", " Alice "}}

	assert.True(t, a.IsAdminUsername("root"))
	assert.True(t, a.IsAdminUsername("alice"))
	assert.False(t, a.IsAdminUsername("bob"))
}

func TestDatabaseConfig_PostgresURL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", d.PostgresURL())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.PostgresConnectionString())
}
