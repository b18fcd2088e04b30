package storage

import (
	"context"
	"fmt"

	"github.com/hrishikeshyadav/portfolio/backend/internal/config"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
	"github.com/hrishikeshyadav/portfolio/backend/internal/storage/redisstore"
	"github.com/hrishikeshyadav/portfolio/backend/internal/storage/sqlstore"
)

// Backends bundles the stores selected by STORE_DRIVER.
type Backends struct {
	Chat    chat.Store
	Contact contact.Store
	close   func() error
}

// Close releases connections held by durable backends.
func (b *Backends) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open builds the chat and contact stores for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (*Backends, error) {
	log = logger.OrNop(log)

	switch cfg.Driver {
	case "", config.StoreMemory:
		log.Info("using in-memory store, data is lost on restart")
		return &Backends{
			Chat:    chat.NewMemoryStore(),
			Contact: contact.NewMemoryStore(),
		}, nil

	case config.StoreSQLite, config.StorePostgres:
		db, err := sqlstore.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.Info("using sql store", "driver", cfg.Driver)
		return &Backends{
			Chat:    sqlstore.NewChatStore(db),
			Contact: sqlstore.NewContactStore(db),
			close:   func() error { return sqlstore.Close(db) },
		}, nil

	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		log.Info("using redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return &Backends{
			Chat:    redisstore.NewChatStore(client, ""),
			Contact: redisstore.NewContactStore(client, ""),
			close:   client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
