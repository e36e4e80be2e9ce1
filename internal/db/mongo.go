package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/description"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/config"
)

type Mongo struct {
	tracker

	Client   *mongo.Client
	Database *mongo.Database
}

// OpenMongo connects to conf.URI and waits for the primary to answer a ping.
// Afterwards the driver's topology monitor keeps State current.
func OpenMongo(ctx context.Context, conf *config.MongoConfig) (*Mongo, error) {
	m := &Mongo{}
	m.set(StateConnecting)

	monitor := &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			if hasAvailableServer(e.NewDescription) {
				m.observe(StateConnected)
				return
			}
			zap.L().Warn("mongo topology has no available servers")
			m.observe(StateDisconnected)
		},
	}

	ctx, cancel := context.WithTimeout(ctx, conf.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(conf.URI).
		SetServerMonitor(monitor)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect -> %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	m.Client = client
	m.Database = client.Database(conf.Database)
	m.set(StateConnected)

	zap.L().Info("connected to mongo", zap.String("database", conf.Database))

	return m, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *Mongo) Close(ctx context.Context) error {
	if !m.close() || m.Client == nil {
		return nil
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("m.Client.Disconnect -> %w", err)
	}

	return nil
}

func hasAvailableServer(t description.Topology) bool {
	for _, s := range t.Servers {
		if s.Kind != description.Unknown {
			return true
		}
	}

	return false
}
