package reports

import (
	"fmt"
	"strconv"
	"strings"

	"log-stats/internal/shared/svcerrors"
)

const (
	codeInvalidHistoryQuery = "RPT_1000"
)

// errInvalidHistoryLimit returns an error for a negative history limit.
func errInvalidHistoryLimit(limit int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidHistoryQuery, fmt.Sprintf("limit must be >= 0, got %d", limit), nil)
}

// ParseHistoryLimit reads the limit query parameter; empty means all.
func ParseHistoryLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, svcerrors.NewInvalidArgumentError(codeInvalidHistoryQuery, fmt.Sprintf("limit must be an integer, got %q", raw), err)
	}
	if limit < 0 {
		return 0, errInvalidHistoryLimit(limit)
	}
	return limit, nil
}
