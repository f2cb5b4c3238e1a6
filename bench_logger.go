package qdw3d

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BenchResult captures one named scenario run, mirroring guda's
// BenchmarkResult shape but scoped to this kernel's own metrics (GOPS
// instead of MB/s, since the workload is compute- not bandwidth-bound at
// small boundary tiles).
type BenchResult struct {
	Name      string    `json:"name"`
	N, T, H, W, K int   `json:"-"`
	NsPerOp   float64   `json:"ns_per_op"`
	GOPS      float64   `json:"gops"`
	Timestamp time.Time `json:"timestamp"`
}

// BenchLogger appends BenchResult entries to a single JSON session file,
// flushing after every append so a crash mid-run loses nothing (guda's
// benchmark_logger.go pattern).
type BenchLogger struct {
	mu      sync.Mutex
	results []BenchResult
	path    string
}

// NewBenchLogger creates a session file under dir named qdw3dbench_<ts>.json.
func NewBenchLogger(dir string) (*BenchLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("bench logger: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("qdw3dbench_%s.json", time.Now().Format("20060102_150405")))
	bl := &BenchLogger{path: path}
	return bl, bl.flush()
}

// Log appends r (stamping its Timestamp) and flushes to disk.
func (bl *BenchLogger) Log(r BenchResult) error {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	r.Timestamp = time.Now()
	bl.results = append(bl.results, r)
	return bl.flush()
}

func (bl *BenchLogger) flush() error {
	data, err := json.MarshalIndent(bl.results, "", "  ")
	if err != nil {
		return fmt.Errorf("bench logger: marshal: %w", err)
	}
	return os.WriteFile(bl.path, data, 0o644)
}

// Path returns the session file path.
func (bl *BenchLogger) Path() string { return bl.path }
