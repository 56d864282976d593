package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
const (
	totalEntries = 64000 // must stay a multiple of the server's pipeline.batch_size
)

var (
	paths    = []string{"/", "/about", "/careers", "/contact"}
	statuses = []int{200, 201, 204, 301, 404, 429, 500, 503}
)

// ### End - fixed configs

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	LatencyMs int    `json:"latencyMs"`
}

type cumulativeStats struct {
	TotalProcessedLogs int64            `json:"totalProcessedLogs"`
	Success2xx         int64            `json:"success2xx"`
	Errors4xx          int64            `json:"errors4xx"`
	Errors5xx          int64            `json:"errors5xx"`
	OtherStatus        int64            `json:"otherStatus"`
	URLs4xx            map[string]int64 `json:"urls4xx"`
	URLs5xx            map[string]int64 `json:"urls5xx"`
	URLStats           map[string]struct {
		Count int64 `json:"count"`
	} `json:"urlStats"`
}

// main runs the e2e scenario: 001_stream_cumulative_totals
//
// It appends a deterministic set of records to the Redis stream consumed by a
// running server (source.type=redis), then polls GET /statsCumulative until
// every record is counted and compares the totals with the expected values.
//
// What it tests:
//   - XREADGROUP consumption and batch collection
//   - Concurrent aggregation by the worker pool without lost increments
//   - Status classification and per-URL 4xx/5xx tables
//
// Expected results:
//   - totalProcessedLogs == 64000
//   - 2xx 24000, 4xx 16000, 5xx 16000, other 8000
//   - 16000 records per path, 4000 4xx and 4000 5xx per path
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	stream := getEnv("REDIS_STREAM", "web_logs")
	parallel := getEnvInt("PARALLEL", 8)
	timeout := time.Duration(getEnvInt("TIMEOUT_S", 120)) * time.Second
	wantCleanStream := getEnvBool("CLEAN_STREAM", false)

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()

	if wantCleanStream {
		fmt.Printf("Trimming stream %s\n", stream)
		if err := client.XTrimMaxLen(ctx, stream, 0).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to trim stream: %v\n", err)
		}
	}

	fmt.Println("Starting e2e scenario: 001_stream_cumulative_totals")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("REDIS_ADDR: %s\n", redisAddr)
	fmt.Printf("REDIS_STREAM: %s\n", stream)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Println()

	baseline, err := fetchCumulative(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read baseline: %v\n", err)
		os.Exit(1)
	}

	// Publish all entries
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var published int64
	var failed int64

	for i := 0; i < totalEntries; i++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(index int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			payload, err := json.Marshal(generateEntry(index))
			if err != nil {
				atomic.AddInt64(&failed, 1)
				return
			}
			err = client.XAdd(ctx, &redis.XAddArgs{
				Stream: stream,
				Values: map[string]interface{}{"payload": string(payload)},
			}).Err()
			if err != nil {
				atomic.AddInt64(&failed, 1)
				fmt.Fprintf(os.Stderr, "ERROR: Entry %d failed: %v\n", index, err)
				return
			}
			atomic.AddInt64(&published, 1)
		}(i)
	}
	wg.Wait()

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d entries failed to publish\n", failed)
		os.Exit(1)
	}
	fmt.Printf("Published %d entries\n", published)

	// Wait for the pipeline to count everything
	deadline := time.Now().Add(timeout)
	var current *cumulativeStats
	for {
		current, err = fetchCumulative(baseURL)
		if err == nil && current.TotalProcessedLogs-baseline.TotalProcessedLogs >= totalEntries {
			break
		}
		if time.Now().After(deadline) {
			fmt.Fprintf(os.Stderr, "ERROR: Timed out waiting for totals (last error: %v)\n", err)
			os.Exit(1)
		}
		time.Sleep(500 * time.Millisecond)
	}

	failures := verify(baseline, current)

	fmt.Println("=== Statistics ===")
	fmt.Printf("Total processed: %d\n", current.TotalProcessedLogs-baseline.TotalProcessedLogs)
	fmt.Printf("2xx: %d\n", current.Success2xx-baseline.Success2xx)
	fmt.Printf("4xx: %d\n", current.Errors4xx-baseline.Errors4xx)
	fmt.Printf("5xx: %d\n", current.Errors5xx-baseline.Errors5xx)
	fmt.Printf("Other: %d\n", current.OtherStatus-baseline.OtherStatus)

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", failure)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func generateEntry(index int) logEntry {
	return logEntry{
		Timestamp: time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC).Add(time.Duration(index) * time.Millisecond).Format(time.RFC3339Nano),
		Method:    "GET",
		URL:       paths[index%len(paths)],
		Status:    statuses[(index/len(paths))%len(statuses)],
		LatencyMs: 50 + index%450,
	}
}

func verify(baseline, current *cumulativeStats) []string {
	perPath := int64(totalEntries / len(paths))
	perStatus := int64(totalEntries / len(statuses))

	var failures []string
	check := func(name string, got, want int64) {
		if got != want {
			failures = append(failures, fmt.Sprintf("%s: got %d, want %d", name, got, want))
		}
	}

	check("totalProcessedLogs", current.TotalProcessedLogs-baseline.TotalProcessedLogs, totalEntries)
	check("success2xx", current.Success2xx-baseline.Success2xx, 3*perStatus)
	check("errors4xx", current.Errors4xx-baseline.Errors4xx, 2*perStatus)
	check("errors5xx", current.Errors5xx-baseline.Errors5xx, 2*perStatus)
	check("otherStatus", current.OtherStatus-baseline.OtherStatus, perStatus)

	counts := func(stats *cumulativeStats) map[string]int64 {
		out := make(map[string]int64, len(stats.URLStats))
		for url, urlStat := range stats.URLStats {
			out[url] = urlStat.Count
		}
		return out
	}
	before, after := counts(baseline), counts(current)
	for _, path := range paths {
		check("url "+path, after[path]-before[path], perPath)
		check("urls4xx "+path, current.URLs4xx[path]-baseline.URLs4xx[path], perPath/4)
		check("urls5xx "+path, current.URLs5xx[path]-baseline.URLs5xx[path], perPath/4)
	}
	return failures
}

func fetchCumulative(baseURL string) (*cumulativeStats, error) {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	resp, err := httpClient.Get(baseURL + "/statsCumulative")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var stats cumulativeStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &stats, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
