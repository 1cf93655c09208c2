package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8083
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "secret"
dbname = "smc_scheduleservice"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = ""
level = "DEBUG"

[metrics]
enabled = true
service_name = "smc-scheduleservice"
path = "/metrics"

[booking_service]
url = "http://localhost:8082"
timeout = 10

[materializer]
enabled = true
cron_spec = "*/30 * * * *"
horizon_days = 14
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=smc_scheduleservice sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "DEBUG", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "http://localhost:8082", cfg.BookingService.URL)
	assert.Equal(t, "*/30 * * * *", cfg.Materializer.CronSpec)
	assert.Equal(t, 14, cfg.Materializer.HorizonDays)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing http port",
			content: `
[database]
host = "localhost"
dbname = "db"
`,
		},
		{
			name: "missing database host",
			content: `
[server]
http_port = 8083
[database]
dbname = "db"
`,
		},
		{
			name: "materializer enabled without cron spec",
			content: `
[server]
http_port = 8083
[database]
host = "localhost"
dbname = "db"
[materializer]
enabled = true
horizon_days = 14
`,
		},
		{
			name: "materializer enabled without horizon",
			content: `
[server]
http_port = 8083
[database]
host = "localhost"
dbname = "db"
[materializer]
enabled = true
cron_spec = "*/30 * * * *"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
