package ingestors

import (
	"fmt"
	"time"

	"log-stats/internal/shared/svcerrors"
)

// BatchCollector configuration errors
const (
	codeInvalidCollectorConfig = "COL_1000"
)

// errInvalidCollectorConfig returns an error for collector settings that cannot work.
func errInvalidCollectorConfig(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidCollectorConfig, msg, fmt.Errorf("invalidCollectorConfig: %s", msg))
}

func validateCollectorConfig(batchSize int, pollTimeout time.Duration) error {
	if batchSize < 1 {
		return errInvalidCollectorConfig(fmt.Sprintf("batch size must be >= 1, got %d", batchSize))
	}
	if pollTimeout <= 0 {
		return errInvalidCollectorConfig(fmt.Sprintf("poll timeout must be positive, got %s", pollTimeout))
	}
	return nil
}
