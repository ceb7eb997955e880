package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "PORT", "ALLOWED_ORIGINS", "AUTO_SYNC_INTERVAL", "PLAN_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Redis.PlanTTL)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " https://rooms.example.org/ ,,http://localhost:5173")
	t.Setenv("AUTO_SYNC_INTERVAL", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://rooms.example.org", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "postgres"},
		Server:   ServerConfig{Port: "8080"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = DriverMemory
	cfg.Sync = SyncConfig{Enabled: true}
	assert.Error(t, cfg.Validate())

	cfg.Sync.Interval = time.Second
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: "3306", Database: "rooms"}
	assert.Equal(t, "u:p@tcp(db:3306)/rooms?charset=utf8mb4&parseTime=True&loc=Local", c.DSN())
}
