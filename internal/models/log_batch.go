package models

import "time"

// LogRecord is the part of a web-access log line the aggregator needs.
// Every other payload field (timestamp, level, method, latencyMs, clientIp,
// message, service) is kept untouched in Attributes.
type LogRecord struct {
	URL        string
	Status     int
	Attributes map[string]any
}

// LogBatch is a fixed-size group of raw serialized records in receipt order.
type LogBatch struct {
	BatchID     string
	Records     [][]byte
	CollectedAt time.Time
}

// Size returns the number of raw records in the batch.
func (b *LogBatch) Size() int {
	return len(b.Records)
}
