package models

import (
	"bytes"
	"sort"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"log-stats/internal/shared/procstats"
)

// Percent is a percentage rendered with two decimals in JSON (e.g. 20.00).
type Percent float64

// NewPercent returns part*100/total, or 0 when total is 0.
func NewPercent(part, total int64) Percent {
	if total <= 0 {
		return 0
	}
	return Percent(float64(part) * 100.0 / float64(total))
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(p), 'f', 2, 64), nil
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

// URLStat is the request count of one URL and its share of the total.
type URLStat struct {
	URL        string  `json:"url"`
	Count      int64   `json:"count"`
	Percentage Percent `json:"percentage"`
}

type urlStatEntry struct {
	Count      int64   `json:"count"`
	Percentage Percent `json:"percentage"`
}

// URLStatList is encoded as an object keyed by URL, keys in list order.
type URLStatList []URLStat

func (l URLStatList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, stat := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.ConfigStd.Marshal(stat.URL)
		if err != nil {
			return nil, err
		}
		value, err := sonic.ConfigStd.Marshal(urlStatEntry{Count: stat.Count, Percentage: stat.Percentage})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *URLStatList) UnmarshalJSON(data []byte) error {
	var entries map[string]urlStatEntry
	if err := sonic.ConfigStd.Unmarshal(data, &entries); err != nil {
		return err
	}
	list := make(URLStatList, 0, len(entries))
	for url, entry := range entries {
		list = append(list, URLStat{URL: url, Count: entry.Count, Percentage: entry.Percentage})
	}
	list.sortByCount()
	*l = list
	return nil
}

// sortByCount orders by count descending, ties broken by URL.
func (l URLStatList) sortByCount() {
	sort.Slice(l, func(i, j int) bool {
		if l[i].Count != l[j].Count {
			return l[i].Count > l[j].Count
		}
		return l[i].URL < l[j].URL
	})
}

// TrafficStats is the aggregate body shared by windowed snapshots and the cumulative view.
//
// Example JSON:
//
//	{
//	  "totalProcessedLogs": 10,
//	  "success2xx": 6,
//	  "errors4xx": 2,
//	  "errors5xx": 2,
//	  "otherStatus": 0,
//	  "errorRatePercent": 20.00,
//	  "urlStats": {
//	    "/login": {"count": 6, "percentage": 60.00},
//	    "/home": {"count": 2, "percentage": 20.00},
//	    "/pay": {"count": 2, "percentage": 20.00}
//	  },
//	  "urls4xx": {"/home": 2},
//	  "urls5xx": {"/pay": 2}
//	}
//
// urlStats keys are written by count descending, ties broken by URL.
type TrafficStats struct {
	TotalProcessedLogs int64            `json:"totalProcessedLogs"`
	Success2xx         int64            `json:"success2xx"`
	Errors4xx          int64            `json:"errors4xx"`
	Errors5xx          int64            `json:"errors5xx"`
	OtherStatus        int64            `json:"otherStatus"`
	ErrorRatePercent   Percent          `json:"errorRatePercent"`
	URLStats           URLStatList      `json:"urlStats"`
	URLs4xx            map[string]int64 `json:"urls4xx"`
	URLs5xx            map[string]int64 `json:"urls5xx"`
}

// StatusTotals are the frozen scalar counters of one counter set.
type StatusTotals struct {
	Total      int64
	Success2xx int64
	Errors4xx  int64
	Errors5xx  int64
}

// NewTrafficStats derives percentages and ordering from frozen counter values.
// The maps are owned by the returned value.
func NewTrafficStats(totals StatusTotals, perURL, perURL4xx, perURL5xx map[string]int64) TrafficStats {
	if perURL4xx == nil {
		perURL4xx = map[string]int64{}
	}
	if perURL5xx == nil {
		perURL5xx = map[string]int64{}
	}

	urlStats := make(URLStatList, 0, len(perURL))
	for url, count := range perURL {
		urlStats = append(urlStats, URLStat{
			URL:        url,
			Count:      count,
			Percentage: NewPercent(count, totals.Total),
		})
	}
	urlStats.sortByCount()

	// Negative only for a window that received the status half of a split record.
	other := totals.Total - totals.Success2xx - totals.Errors4xx - totals.Errors5xx
	if other < 0 {
		other = 0
	}

	return TrafficStats{
		TotalProcessedLogs: totals.Total,
		Success2xx:         totals.Success2xx,
		Errors4xx:          totals.Errors4xx,
		Errors5xx:          totals.Errors5xx,
		OtherStatus:        other,
		ErrorRatePercent:   NewPercent(totals.Errors5xx, totals.Total),
		URLStats:           urlStats,
		URLs4xx:            perURL4xx,
		URLs5xx:            perURL5xx,
	}
}

// URLCounts returns the per-URL request counts as a map.
func (s TrafficStats) URLCounts() map[string]int64 {
	counts := make(map[string]int64, len(s.URLStats))
	for _, stat := range s.URLStats {
		counts[stat.URL] = stat.Count
	}
	return counts
}

// TopURLs returns at most n URL stats, most requested first.
func (s TrafficStats) TopURLs(n int) []URLStat {
	if n >= len(s.URLStats) {
		return s.URLStats
	}
	return s.URLStats[:n]
}

// Snapshot is the immutable windowed statistics published at the end of a round.
type Snapshot struct {
	ID        string    `json:"id"`
	Round     uint64    `json:"round"`
	Timestamp time.Time `json:"timestamp"`
	TrafficStats
}

// NewEmptySnapshot is the snapshot served before the first round completes.
func NewEmptySnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Timestamp:    now.UTC(),
		TrafficStats: NewTrafficStats(StatusTotals{}, nil, nil, nil),
	}
}

// CumulativeStats are the statistics since process start, computed on demand.
type CumulativeStats struct {
	Since     time.Time `json:"since"`
	Timestamp time.Time `json:"timestamp"`
	TrafficStats
}

const (
	HealthStatusUp = "UP"

	PipelineRunning = "RUNNING"
	PipelineStopped = "STOPPED"
)

// Health is the liveness probe payload.
type Health struct {
	Status         string                  `json:"status"`
	Pipeline       string                  `json:"pipeline"`
	TotalProcessed int64                   `json:"totalProcessed"`
	UptimeSeconds  int64                   `json:"uptimeSeconds"`
	Process        *procstats.ProcessStats `json:"process,omitempty"`
}
