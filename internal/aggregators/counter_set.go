package aggregators

import (
	"sync"
	"sync/atomic"

	"log-stats/internal/models"
)

// counterMap is a concurrent URL -> count table. Entries are created once and
// then only incremented atomically, so hot URLs never contend on a lock.
type counterMap struct {
	entries sync.Map // string -> *atomic.Int64
}

func (m *counterMap) inc(key string) {
	if v, ok := m.entries.Load(key); ok {
		v.(*atomic.Int64).Add(1)
		return
	}
	v, _ := m.entries.LoadOrStore(key, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

func (m *counterMap) get(key string) int64 {
	if v, ok := m.entries.Load(key); ok {
		return v.(*atomic.Int64).Load()
	}
	return 0
}

// read copies the non-zero entries. With reset, every entry is zeroed in the
// same atomic step it is read in; zeroed entries stay allocated for reuse.
func (m *counterMap) read(reset bool) map[string]int64 {
	out := make(map[string]int64)
	m.entries.Range(func(key, value any) bool {
		counter := value.(*atomic.Int64)
		var n int64
		if reset {
			n = counter.Swap(0)
		} else {
			n = counter.Load()
		}
		if n > 0 {
			out[key.(string)] = n
		}
		return true
	})
	return out
}

func (m *counterMap) sum() int64 {
	var total int64
	m.entries.Range(func(_, value any) bool {
		total += value.(*atomic.Int64).Load()
		return true
	})
	return total
}

// CounterSet holds one instance of the traffic counters (windowed or cumulative).
type CounterSet struct {
	total     atomic.Int64
	status2xx atomic.Int64
	status4xx atomic.Int64
	status5xx atomic.Int64

	perURL    counterMap
	perURL4xx counterMap
	perURL5xx counterMap
}

func NewCounterSet() *CounterSet {
	return &CounterSet{}
}

// Apply counts one record under url. The total is incremented before any
// status bucket, so a concurrent reader never sees a bucket ahead of the total.
func (c *CounterSet) Apply(url string, class models.StatusClass) {
	c.total.Add(1)
	c.perURL.inc(url)

	switch class {
	case models.StatusServerError:
		c.status5xx.Add(1)
		c.perURL5xx.inc(url)
	case models.StatusClientError:
		c.status4xx.Add(1)
		c.perURL4xx.inc(url)
	case models.StatusSuccess:
		c.status2xx.Add(1)
	}
}

func (c *CounterSet) Total() int64 {
	return c.total.Load()
}

func (c *CounterSet) URLCount(url string) int64 {
	return c.perURL.get(url)
}

// URLCountSum is the sum over all per-URL counters.
func (c *CounterSet) URLCountSum() int64 {
	return c.perURL.sum()
}

// Stats reads the counters without resetting them.
func (c *CounterSet) Stats() models.TrafficStats {
	return c.read(false)
}

// Drain reads and zeroes every counter. Once writers are quiesced the drained
// values are exact; a record applied concurrently with Drain may have its
// counters split across two drains, but no increment is lost.
func (c *CounterSet) Drain() models.TrafficStats {
	return c.read(true)
}

func (c *CounterSet) read(reset bool) models.TrafficStats {
	load := func(v *atomic.Int64) int64 {
		if reset {
			return v.Swap(0)
		}
		return v.Load()
	}

	perURL5xx := c.perURL5xx.read(reset)
	perURL4xx := c.perURL4xx.read(reset)
	totals := models.StatusTotals{
		Errors5xx:  load(&c.status5xx),
		Errors4xx:  load(&c.status4xx),
		Success2xx: load(&c.status2xx),
	}
	perURL := c.perURL.read(reset)
	totals.Total = load(&c.total)

	// A record applied mid-drain may land its status here and its total in the previous drain.
	if split := totals.Success2xx + totals.Errors4xx + totals.Errors5xx - totals.Total; reset && split > 0 {
		metricWindowSplitRecordsTotal.Add(float64(split))
	}

	return models.NewTrafficStats(totals, perURL, perURL4xx, perURL5xx)
}
