// Package dismissal provides banner.KeyValueStore implementations that hold
// the per-client dismissal flag.
package dismissal

import (
	"errors"
	"fmt"

	"github.com/patrickwarner/openinapp/internal/banner"
)

// Backend names accepted by config.
const (
	BackendCookie   = "cookie"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ErrNilClient is returned when a backend has no underlying connection.
var ErrNilClient = errors.New("dismissal: backend client is nil")

// Backend hands out stores scoped to a single client.
type Backend interface {
	For(clientID string) banner.KeyValueStore
}

// ValidateBackend rejects unknown backend names.
func ValidateBackend(name string) error {
	switch name {
	case BackendCookie, BackendMemory, BackendRedis, BackendPostgres:
		return nil
	}
	return fmt.Errorf("unknown dismissal backend %q", name)
}
