package sources

import (
	"context"
	"sync"
	"time"
)

const defaultMemoryBuffer = 4096

// MemorySource is an in-process RecordSource fed through Publish. It backs the
// memory source type, where the embedded generator is the only producer.
type MemorySource struct {
	records chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func NewMemorySource(buffer int) *MemorySource {
	if buffer <= 0 {
		buffer = defaultMemoryBuffer
	}
	return &MemorySource{
		records: make(chan []byte, buffer),
		closed:  make(chan struct{}),
	}
}

// Publish hands one record to the source, blocking while the buffer is full.
func (s *MemorySource) Publish(ctx context.Context, record []byte) error {
	select {
	case <-s.closed:
		return ErrSourceClosed
	default:
	}

	select {
	case s.records <- record:
		return nil
	case <-s.closed:
		return ErrSourceClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll returns every record already buffered, or waits up to timeout for the first one.
func (s *MemorySource) Poll(ctx context.Context, timeout time.Duration) ([][]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var first []byte
	select {
	case first = <-s.records:
	case <-timer.C:
		return nil, nil
	case <-s.closed:
		return nil, ErrSourceClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	records := [][]byte{first}
	for {
		select {
		case record := <-s.records:
			records = append(records, record)
		default:
			return records, nil
		}
	}
}

func (s *MemorySource) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}
