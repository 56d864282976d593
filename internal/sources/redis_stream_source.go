package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"log-stats/internal/shared/loggers"
)

// PayloadField is the stream entry field holding one serialized record.
const PayloadField = "payload"

const defaultReadCount = 100

// StreamClient is the subset of *redis.Client the stream source needs.
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	Close() error
}

// RedisStreamOptions configures a consumer-group reader on one stream.
type RedisStreamOptions struct {
	Stream    string
	Group     string
	Consumer  string // random when empty
	ReadCount int
}

// RedisStreamSource reads records through a Redis Streams consumer group.
// Entries are acknowledged as soon as they are received, so a crash between
// receipt and aggregation loses them (at-most-once).
type RedisStreamSource struct {
	client StreamClient
	opts   RedisStreamOptions
	logger loggers.Logger
}

// NewRedisStreamSource creates the consumer group (and the stream) when missing.
// An unreachable server fails here so startup can abort.
func NewRedisStreamSource(ctx context.Context, client StreamClient, opts RedisStreamOptions, logger loggers.Logger) (*RedisStreamSource, error) {
	if opts.Consumer == "" {
		opts.Consumer = "log-stats-" + uuid.NewString()
	}
	if opts.ReadCount <= 0 {
		opts.ReadCount = defaultReadCount
	}

	err := client.XGroupCreateMkStream(ctx, opts.Stream, opts.Group, "$").Err()
	if err != nil && !isBusyGroup(err) {
		return nil, fmt.Errorf("create consumer group %q on stream %q: %w", opts.Group, opts.Stream, err)
	}

	logger.Info().
		Str(loggers.FieldStream, opts.Stream).
		Str("group", opts.Group).
		Str("consumer", opts.Consumer).
		Msg("joined redis stream consumer group")

	return &RedisStreamSource{client: client, opts: opts, logger: logger}, nil
}

// NewRedisClient builds the go-redis client used by the stream source and sink.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RedisStreamSource) Poll(ctx context.Context, timeout time.Duration) ([][]byte, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.opts.Group,
		Consumer: s.opts.Consumer,
		Streams:  []string{s.opts.Stream, ">"},
		Count:    int64(s.opts.ReadCount),
		Block:    timeout,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if errors.Is(err, redis.ErrClosed) {
			return nil, ErrSourceClosed
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errInternalSourcePollFailed(err)
	}

	var records [][]byte
	var ids []string
	for _, stream := range streams {
		for _, message := range stream.Messages {
			ids = append(ids, message.ID)
			payload, ok := payloadOf(message)
			if !ok {
				s.logger.Warn().
					Str(loggers.FieldStream, stream.Stream).
					Str("message_id", message.ID).
					Msg("stream entry has no payload field")
				continue
			}
			records = append(records, payload)
		}
	}

	if len(ids) > 0 {
		if err := s.client.XAck(ctx, s.opts.Stream, s.opts.Group, ids...).Err(); err != nil {
			s.logger.Warn().Err(err).Int("count", len(ids)).Msg("failed to ack stream entries")
		}
	}
	return records, nil
}

func (s *RedisStreamSource) Close() error {
	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return errInternalSourceCloseFailed(err)
	}
	return nil
}

func payloadOf(message redis.XMessage) ([]byte, bool) {
	switch v := message.Values[PayloadField].(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}

func isBusyGroup(err error) bool {
	return strings.HasPrefix(err.Error(), "BUSYGROUP")
}
