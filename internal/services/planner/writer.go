package planner

import (
	"log"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/chrisharrington/irrigo/internal/model"
)

// Writer persists planned schedules to InfluxDB through the async WriteAPI
// and tracks the last write error for /healthz and /readyz.
type Writer struct {
	api     api.WriteAPI
	mu      sync.RWMutex
	lastErr time.Time
	points  int64
}

// NewWriter starts the listener draining the WriteAPI's async error channel.
func NewWriter(w api.WriteAPI) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour),
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("planner: influx write error: %v", err)
			}
		}
	}()
	return ww
}

// RecordSchedule writes one point per irrigation day of the planned schedule.
func (w *Writer) RecordSchedule(evt model.SchedulePlannedEvent) {
	if w == nil {
		return
	}
	for _, entry := range evt.Entries {
		w.api.WritePoint(entryToPoint(evt, entry))
	}
	w.mu.Lock()
	w.points += int64(len(evt.Entries))
	w.mu.Unlock()
}

// LastErrorAge returns how long writes have been error-free.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// Points returns how many schedule points have been handed to the WriteAPI.
func (w *Writer) Points() int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.points
}
