package procstats

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

const bytesPerMB = 1024 * 1024

// ProcessStats holds memory usage information of the current process.
type ProcessStats struct {
	RSSMB        float64 `json:"rssMb"`
	VMSMB        float64 `json:"vmsMb"`
	HeapAllocMB  float64 `json:"heapAllocMb"`
	NumGoroutine int     `json:"goroutines"`
}

// Read returns runtime stats and, when the OS exposes them, RSS/VMS of this process.
// Partial stats are returned together with the error when the OS lookup fails.
var Read = func() (*ProcessStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &ProcessStats{
		HeapAllocMB:  float64(m.Alloc) / bytesPerMB,
		NumGoroutine: runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, err
	}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return stats, err
	}

	stats.RSSMB = float64(memInfo.RSS) / bytesPerMB
	stats.VMSMB = float64(memInfo.VMS) / bytesPerMB
	return stats, nil
}
