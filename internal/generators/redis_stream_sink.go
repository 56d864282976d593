package generators

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/sources"
)

const codeInternalStreamAppendFailed = "GEN_9000"

// StreamAdder is the subset of *redis.Client the sink needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamSink appends each record to a stream, trimming it to roughly maxLen entries.
type RedisStreamSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

func NewRedisStreamSink(client StreamAdder, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisStreamSink) Publish(ctx context.Context, record []byte) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: map[string]interface{}{sources.PayloadField: string(record)},
	}).Err()
	if err != nil {
		return svcerrors.NewInternalError(codeInternalStreamAppendFailed, fmt.Errorf("streamAppendFailed: %w", err))
	}
	return nil
}
