package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "Spaced Repetition Review Tool",
			Version: "1.0.0",
		},
		Server: ServerConfig{
			Port: 8000,
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			},
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Driver:         "sqlite",
			Path:           filepath.Join("data", "revisit.db"),
			Host:           "localhost",
			Port:           3306,
			Database:       "revisit",
			Username:       "revisit",
			AutoMigrate:    true,
			ConnectRetries: 5,
		},
		Schedule: ScheduleConfig{Timezone: "Local"},
		Client: ClientConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			TimeoutSeconds: 10,
			RetryAttempts:  2,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `app:
  name: My Reviews
  debug: true
server:
  port: 9000
  cors:
    allowed_origins:
      - https://reviews.example.com
database:
  driver: mysql
  host: db.example.com
  port: 3307
  database: reviews
  username: admin
  max_open_conns: 20
schedule:
  timezone: Asia/Tokyo
digest:
  schedule: "0 7 * * *"
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.App.Name = "My Reviews"
				cfg.App.Debug = true
				cfg.Server.Port = 9000
				cfg.Server.CORS.AllowedOrigins = []string{"https://reviews.example.com"}
				cfg.Database.Driver = "mysql"
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Database = "reviews"
				cfg.Database.Username = "admin"
				cfg.Database.MaxOpenConns = 20
				cfg.Schedule.Timezone = "Asia/Tokyo"
				cfg.Digest.Schedule = "0 7 * * *"
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `database:
  path: explicit/revisit.db
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Path = "explicit/revisit.db"
				return cfg
			},
		},
		{
			name:          "environment variables override defaults",
			configContent: "",
			env: map[string]string{
				"PORT":         "8081",
				"DB_PASSWORD":  "secret",
				"CORS_ORIGINS": "http://a.example.com,http://b.example.com",
				"DEBUG":        "true",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 8081
				cfg.Database.Password = "secret"
				cfg.Server.CORS.AllowedOrigins = []string{"http://a.example.com", "http://b.example.com"}
				cfg.App.Debug = true
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  driver: sqlite
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unsupported database driver",
			configContent: `database:
  driver: oracle
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [mysql sqlite]"},
		},
		{
			name: "unknown timezone",
			configContent: `schedule:
  timezone: Mars/Olympus_Mons
`,
			wantErr:           true,
			wantErrorContains: []string{"schedule.timezone must be a valid IANA time zone name"},
		},
		{
			name: "malformed digest cron spec",
			configContent: `digest:
  schedule: every morning
`,
			wantErr:           true,
			wantErrorContains: []string{"digest.schedule must be a valid 5-field cron expression"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "revisit.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestScheduleConfig_Location(t *testing.T) {
	loc, err := ScheduleConfig{Timezone: "Asia/Tokyo"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	loc, err = ScheduleConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = ScheduleConfig{Timezone: "Nowhere/Special"}.Location()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("REVISIT_DOTENV_TEST=from-file\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("REVISIT_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(envPath, filepath.Join(tempDir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("REVISIT_DOTENV_TEST"))
}
