package sources

import (
	"context"
	"time"
)

//go:generate mockgen -source=record_source.go -destination=./mocks/record_source_mock.go -package=mocks
type RecordSource interface {
	// Poll waits up to timeout for raw records. An empty result with a nil
	// error means nothing arrived in time.
	Poll(ctx context.Context, timeout time.Duration) ([][]byte, error)
	// Close releases the upstream connection. It is the last step of shutdown.
	Close() error
}
