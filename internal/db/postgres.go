package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/config"
)

const postgresPingInterval = 10 * time.Second

type Postgres struct {
	tracker

	DB    *gorm.DB
	sqlDB *sql.DB
	stop  chan struct{}
	done  chan struct{}
}

func OpenPostgres(ctx context.Context, conf *config.PostgresConfig) (*Postgres, error) {
	return OpenPostgresWithURL(ctx, conf.URL)
}

// OpenPostgresWithURL opens url and pings it. A background loop keeps State
// current by pinging every postgresPingInterval until Close.
func OpenPostgresWithURL(ctx context.Context, url string) (*Postgres, error) {
	p := &Postgres{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.set(StateConnecting)

	gormDB, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("gormDB.DB -> %w", err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlDB.PingContext -> %w", err)
	}

	p.DB = gormDB
	p.sqlDB = sqlDB
	p.set(StateConnected)

	go p.monitor()

	zap.L().Info("connected to postgres")

	return p, nil
}

func (p *Postgres) monitor() {
	defer close(p.done)

	ticker := time.NewTicker(postgresPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), postgresPingInterval/2)
			err := p.sqlDB.PingContext(ctx)
			cancel()
			if err != nil {
				zap.L().Warn("postgres ping failed", zap.Error(err))
				p.observe(StateDisconnected)
				continue
			}
			p.observe(StateConnected)
		}
	}
}

func (p *Postgres) Close(ctx context.Context) error {
	if !p.close() {
		return nil
	}

	close(p.stop)
	select {
	case <-p.done:
	case <-ctx.Done():
	}

	if err := p.sqlDB.Close(); err != nil {
		return fmt.Errorf("p.sqlDB.Close -> %w", err)
	}

	return nil
}
