package dismissal

import (
	"fmt"

	"github.com/patrickwarner/openinapp/internal/config"
	"github.com/patrickwarner/openinapp/internal/db"
)

// Open connects the configured dismissal backend and returns a func that
// releases it. The cookie backend needs no connection and is represented by
// a nil Backend.
func Open(cfg config.Config) (Backend, func(), error) {
	switch cfg.DismissalBackend {
	case BackendRedis:
		store, err := db.InitRedis(cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return NewRedisBackend(store, cfg.DismissalTTL), store.Close, nil
	case BackendPostgres:
		pg, err := db.InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect postgres: %w", err)
		}
		return NewPostgresBackend(pg), pg.Close, nil
	case BackendMemory:
		return NewMemoryBackend(), func() {}, nil
	case BackendCookie:
		return nil, func() {}, nil
	}
	return nil, nil, ValidateBackend(cfg.DismissalBackend)
}
