// Package metrics keeps lightweight counter and gauge time series in the
// application workdir so the console monitor and the admin dashboard can
// show activity trends without an external collector.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"go.uber.org/zap"
)

var (
	mu      sync.Mutex
	storage tstorage.Storage
)

// InitMetrics opens the metrics store under workdir. Safe to call once at
// startup; failures disable metrics but never the application.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	st, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = st
	return nil
}

// SetGauge records an instantaneous value for name.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter records a single occurrence of name. Rates are derived at
// query time by counting points in a window.
func IncrCounter(name string) {
	insert(name, 1)
}

func insert(name string, value float64) {
	mu.Lock()
	st := storage
	mu.Unlock()
	if st == nil {
		return
	}
	err := st.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
	if err != nil {
		zap.S().Debugf("metrics insert %s failed: %s", name, err)
	}
}

// CountSince returns the number of points recorded for name since start.
func CountSince(name string, start time.Time) int {
	mu.Lock()
	st := storage
	mu.Unlock()
	if st == nil {
		return 0
	}
	points, err := st.Select(name, nil, start.Unix(), time.Now().Unix()+1)
	if err != nil {
		return 0
	}
	return len(points)
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
