package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/config"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/db"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository/dao"
)

func TestOpenStore_Memory(t *testing.T) {
	conf := &config.AppConfig{Storage: &config.StorageConfig{Driver: config.DriverMemory}}

	conn, itemDAO, err := OpenStore(context.Background(), conf)
	require.NoError(t, err)
	assert.True(t, db.Ready(conn))
	assert.IsType(t, &dao.MemoryItemDAO{}, itemDAO)

	require.NoError(t, conn.Close(context.Background()))
	assert.False(t, db.Ready(conn))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	conf := &config.AppConfig{Storage: &config.StorageConfig{Driver: "redis"}}

	_, _, err := OpenStore(context.Background(), conf)
	assert.Error(t, err)
}

func TestOpenStore_MongoUnreachable(t *testing.T) {
	conf := &config.AppConfig{
		Storage: &config.StorageConfig{Driver: config.DriverMongo},
		Mongo: &config.MongoConfig{
			URI:            "mongodb://127.0.0.1:1/db",
			Database:       "db",
			Collection:     "items",
			ConnectTimeout: 300 * time.Millisecond,
		},
	}

	_, _, err := OpenStore(context.Background(), conf)
	assert.Error(t, err)
}

func TestStart_FailsWithoutDatabase(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:1/db")
	t.Setenv("GIN_MODE", "test")

	path := filepath.Join(t.TempDir(), "config.yml")
	err := startWithMongoTimeout(t, path)
	assert.ErrorContains(t, err, "failed to initialize database")
}

func startWithMongoTimeout(t *testing.T, path string) error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- Start(path) }()

	select {
	case err := <-done:
		return err
	case <-time.After(30 * time.Second):
		t.Fatal("Start did not fail on an unreachable database")
		return nil
	}
}
