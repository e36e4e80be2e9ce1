package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/api"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/config"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/db"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/logger"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository/dao"
)

const DefaultConfigPath = "./cmd/app/config.yml"

// Start runs the service until SIGINT or SIGTERM. Any error returned before
// the server starts listening means the process must not serve traffic.
func Start(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer logger.Sync()

	config.Watch(configPath, func(c *config.AppConfig, err error) {
		if err != nil {
			zap.L().Warn("ignoring config change", zap.Error(err))
			return
		}
		if err = logger.SetLevel(c.Log.Level); err != nil {
			zap.L().Warn("ignoring log level change", zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.String("level", logger.Level().String()))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, itemDAO, err := OpenStore(ctx, conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s := api.NewServer(conf, conn, itemDAO)

	zap.L().Info("server config",
		zap.String("port", conf.API.Port),
		zap.String("driver", conf.Storage.Driver),
		zap.Duration("shutdownTimeout", conf.API.ShutdownTimeout),
	)

	if err = s.Run(ctx); err != nil {
		return fmt.Errorf("failed to run the server -> %w", err)
	}

	return nil
}

// OpenStore connects to the configured driver and returns the connection with
// the item DAO that uses it.
func OpenStore(ctx context.Context, conf *config.AppConfig) (db.Connection, repository.ItemDAO, error) {
	switch conf.Storage.Driver {
	case config.DriverMongo:
		conn, err := db.OpenMongo(ctx, conf.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("db.OpenMongo -> %w", err)
		}
		return conn, dao.NewMongoItemDAO(conn.Collection(conf.Mongo.Collection)), nil

	case config.DriverPostgres:
		conn, err := db.OpenPostgres(ctx, conf.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("db.OpenPostgres -> %w", err)
		}
		if err = dao.InitTables(conn.DB); err != nil {
			_ = conn.Close(context.Background())
			return nil, nil, fmt.Errorf("dao.InitTables -> %w", err)
		}
		return conn, dao.NewPostgresItemDAO(conn.DB), nil

	case config.DriverMemory:
		conn, err := db.OpenMemory(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("db.OpenMemory -> %w", err)
		}
		return conn, dao.NewMemoryItemDAO(), nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
