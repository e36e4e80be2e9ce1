package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "4000", conf.API.Port)
	assert.Equal(t, 10*time.Second, conf.API.ShutdownTimeout)
	assert.Equal(t, DriverMongo, conf.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017/db", conf.Mongo.URI)
	assert.Equal(t, "db", conf.Mongo.Database)
	assert.Equal(t, "items", conf.Mongo.Collection)
	assert.Equal(t, []string{"*"}, conf.API.AllowedCORSDomains)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
api:
  port: "8081"
  shutdown_timeout: 3s
storage:
  driver: memory
mongo:
  database: inventory
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8081", conf.API.Port)
	assert.Equal(t, 3*time.Second, conf.API.ShutdownTimeout)
	assert.Equal(t, DriverMemory, conf.Storage.Driver)
	assert.Equal(t, "inventory", conf.Mongo.Database)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017/myapp")
	t.Setenv("DB_NAME", "other")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "25")
	t.Setenv("API_ALLOWED_CORS_DOMAINS", "http://localhost:5173, https://*.example.com")

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", conf.API.Port)
	assert.Equal(t, "mongodb://mongo:27017/myapp", conf.Mongo.URI)
	assert.Equal(t, "other", conf.Mongo.Database)
	assert.Equal(t, 25*time.Second, conf.API.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://*.example.com"}, conf.API.AllowedCORSDomains)
}

func TestLoad_EnvPrecedence(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://first:27017/db")
	t.Setenv("MONGODB_URI", "mongodb://second:27017/db")

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://first:27017/db", conf.Mongo.URI)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "port out of range",
			env:  map[string]string{"PORT": "70000"},
		},
		{
			name: "port not a number",
			env:  map[string]string{"PORT": "http"},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"STORAGE_DRIVER": "redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api: [port"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
