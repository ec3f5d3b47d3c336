package service

import (
	"context"
	"log"
	"time"

	"github.com/inkpost/internal/config"
	"github.com/inkpost/internal/db"
	"gorm.io/gorm/logger"
)

const mongoConnectTimeout = 15 * time.Second

// OpenPostStore opens the store selected by cfg.StoreDriver. The returned
// function releases its connections.
func OpenPostStore(ctx context.Context, cfg config.AppConfig) (PostStore, func(), error) {
	if cfg.StoreDriver == config.StoreMongo {
		ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
		defer cancel()

		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		store := NewMongoPostStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Printf("failed to ensure mongo indexes: %v", err)
		}
		log.Printf("Connected to MongoDB database %s", cfg.MongoDatabase)
		return store, func() { client.Disconnect(context.Background()) }, nil
	}

	gdb, err := db.Open(cfg.DatabasePath, logger.Warn)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Connected to sqlite database %s", cfg.DatabasePath)
	return NewGormPostStore(gdb), func() { db.Close(gdb) }, nil
}
