package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"apix/internal/config"
	"apix/internal/repositories/cache"
)

const pdfContentType = "application/pdf"

// ErrInvalidDocumentKey is returned when a tracking key cannot name a document.
var ErrInvalidDocumentKey = errors.New("invalid document key")

// DocumentStore is implemented by every storage backend.
type DocumentStore interface {
	Save(ctx context.Context, key string, content []byte) error
	Ping(ctx context.Context) error
	io.Closer
}

// NewDocumentStore builds the backend selected by cfg.Storage.Driver.
func NewDocumentStore(cfg *config.Config) (DocumentStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageFile, "":
		return NewFileStore(cfg.Storage.DocumentsDir)
	case config.StoragePostgres:
		db, err := InitDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	case config.StorageRedis:
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(cache.NewRedisCache(client, redisDocumentPrefix), cfg.Redis.DocumentTTL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
