package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "muelle-secreto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "muelle-secreto")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "muelle-secreto")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Secret")
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(JWTConfig{Secret: "muelle-secreto", TTL: time.Hour})

	token, err := issuer.Generate("u1", "Operador", "op@muelle.co", "admin")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "op@muelle.co", claims.Email)
	assert.Equal(t, "admin", claims.Role)

	other := NewTokenIssuer(JWTConfig{Secret: "otro-secreto", TTL: time.Hour})
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestOpenDB_SQLiteMemory(t *testing.T) {
	db, err := OpenDB(DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.Ping())

	_, err = OpenDB(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
