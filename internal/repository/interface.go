package repository

import "context"

// DB is the liveness check used by the health endpoint.
type DB interface {
	Ping(ctx context.Context) error
}
