package ingestors_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log-stats/internal/ingestors"
	ingestormocks "log-stats/internal/ingestors/mocks"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/sources"
	sourcemocks "log-stats/internal/sources/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingSink struct {
	mu      sync.Mutex
	batches []*models.LogBatch
}

func (s *recordingSink) Push(batch *models.LogBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, batch)
}

func (s *recordingSink) Batches() []*models.LogBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.LogBatch(nil), s.batches...)
}

func raws(values ...string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}

// stopPolling cancels the run and reports what a cancelled source returns.
func stopPolling(cancel context.CancelFunc) func(ctx context.Context, _ time.Duration) ([][]byte, error) {
	return func(ctx context.Context, _ time.Duration) ([][]byte, error) {
		cancel()
		return nil, ctx.Err()
	}
}

func TestBatchCollector_Run_FlushesFixedSizeBatchesInOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := sourcemocks.NewMockRecordSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Poll(gomock.Any(), 100*time.Millisecond).Return(raws("r1", "r2", "r3"), nil),
		source.EXPECT().Poll(gomock.Any(), 100*time.Millisecond).Return(nil, nil),
		source.EXPECT().Poll(gomock.Any(), 100*time.Millisecond).Return(raws("r4", "r5"), nil),
		source.EXPECT().Poll(gomock.Any(), 100*time.Millisecond).DoAndReturn(stopPolling(cancel)),
	)
	sink := &recordingSink{}

	collector, err := ingestors.NewBatchCollector(source, sink, 2, 100*time.Millisecond, loggers.Nop())
	require.NoError(t, err)

	err = collector.Run(ctx)

	require.NoError(t, err)
	batches := sink.Batches()
	require.Len(t, batches, 2, "r5 stays in the discarded partial batch")
	assert.Equal(t, raws("r1", "r2"), batches[0].Records)
	assert.Equal(t, raws("r3", "r4"), batches[1].Records)
	assert.NotEmpty(t, batches[0].BatchID)
	assert.NotEqual(t, batches[0].BatchID, batches[1].BatchID)
	assert.False(t, batches[0].CollectedAt.IsZero())
}

func TestBatchCollector_Run_PushesEachFullBatchOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := sourcemocks.NewMockRecordSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).Return(raws("a", "b", "c", "d", "e", "f"), nil),
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).DoAndReturn(stopPolling(cancel)),
	)
	var pushed [][][]byte
	sink := ingestormocks.NewMockBatchSink(ctrl)
	sink.EXPECT().Push(gomock.Any()).Do(func(batch *models.LogBatch) {
		pushed = append(pushed, batch.Records)
	}).Times(2)

	collector, err := ingestors.NewBatchCollector(source, sink, 3, time.Millisecond, loggers.Nop())
	require.NoError(t, err)

	require.NoError(t, collector.Run(ctx))
	assert.Equal(t, [][][]byte{raws("a", "b", "c"), raws("d", "e", "f")}, pushed)
}

func TestBatchCollector_Run_PollErrorsDoNotStopCollection(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pollErr := svcerrors.NewInternalError("SRC_9000", errors.New("i/o timeout"))
	source := sourcemocks.NewMockRecordSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).Return(nil, pollErr),
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).Return(nil, errors.New("unclassified")),
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).Return(raws("a", "b"), nil),
		source.EXPECT().Poll(gomock.Any(), gomock.Any()).DoAndReturn(stopPolling(cancel)),
	)
	sink := &recordingSink{}

	collector, err := ingestors.NewBatchCollector(source, sink, 2, time.Millisecond, loggers.Nop())
	require.NoError(t, err)

	require.NoError(t, collector.Run(ctx))
	require.Len(t, sink.Batches(), 1)
	assert.Equal(t, raws("a", "b"), sink.Batches()[0].Records)
}

func TestBatchCollector_Run_StopsWhenSourceClosed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := sourcemocks.NewMockRecordSource(ctrl)
	source.EXPECT().Poll(gomock.Any(), gomock.Any()).Return(nil, sources.ErrSourceClosed)

	collector, err := ingestors.NewBatchCollector(source, &recordingSink{}, 2, time.Millisecond, loggers.Nop())
	require.NoError(t, err)

	err = collector.Run(context.Background())

	assert.ErrorIs(t, err, sources.ErrSourceClosed)
}

func TestBatchCollector_Run_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := sourcemocks.NewMockRecordSource(ctrl)
	collector, err := ingestors.NewBatchCollector(source, &recordingSink{}, 2, time.Millisecond, loggers.Nop())
	require.NoError(t, err)

	assert.NoError(t, collector.Run(ctx), "no poll is expected once cancelled")
}

func TestNewBatchCollector_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		batchSize   int
		pollTimeout time.Duration
	}{
		{name: "zero batch size", batchSize: 0, pollTimeout: time.Millisecond},
		{name: "zero poll timeout", batchSize: 20, pollTimeout: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ingestors.NewBatchCollector(nil, nil, tt.batchSize, tt.pollTimeout, loggers.Nop())

			require.Error(t, err)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "COL_1000", svcErr.Code)
		})
	}
}
