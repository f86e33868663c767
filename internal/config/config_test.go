package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "room_booking"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true
service_name = "room-booking"
path = "/metrics"

[room_service]
url = "http://localhost:8081"
timeout = 3

[user_service]
url = "http://localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3, cfg.RoomService.Timeout)
	// Дефолт применился для непрописанного таймаута.
	assert.Equal(t, 5, cfg.UserService.Timeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoad_MissingRequiredField(t *testing.T) {
	path := writeTempConfig(t, `
[database]
host = "localhost"
port = 5432
user = "booking"

[room_service]
url = "http://localhost:8081"

[user_service]
url = "http://localhost:8082"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname")
}

func TestLoad_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "from-env")

	path := writeTempConfig(t, `
[database]
host = "localhost"
port = 5432
user = "booking"
password = "${TEST_DB_PASSWORD}"
dbname = "room_booking"

[room_service]
url = "http://localhost:8081"

[user_service]
url = "http://localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "pw",
		DBName:   "bookings",
	}

	dsn := d.DSN()
	assert.Equal(t, "host=db.internal port=5433 user=svc password=pw dbname=bookings sslmode=disable", dsn)

	d.SSLMode = "require"
	assert.Contains(t, d.DSN(), "sslmode=require")
}
