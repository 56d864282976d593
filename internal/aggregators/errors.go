package aggregators

import (
	"log-stats/internal/shared/svcerrors"
)

const (
	codeMalformedRecord = "AGG_1000"
)

// errMalformedRecord returns an error for a record that cannot be counted.
func errMalformedRecord(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedRecord, msg, cause)
}
