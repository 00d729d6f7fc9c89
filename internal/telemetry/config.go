package telemetry

import (
	"os"
	"sync"
)

const (
	EnvObserve   = "RECORDSHIM_OBSERVE_JSON"
	EnvEventsDir = "RECORDSHIM_EVENTS_DIR"

	// DefaultEventsDir holds events.jsonl when nothing else is configured.
	DefaultEventsDir = ".recordshim"
)

var (
	cfgMu          sync.RWMutex
	observeEnabled bool
	eventsDir      string
)

func init() {
	// Read once at process start; Configure may replace these later.
	observeEnabled = os.Getenv(EnvObserve) == "1"
	eventsDir = os.Getenv(EnvEventsDir)
}

// Configure sets the process-wide telemetry switches, typically from the
// loaded config file. An empty dir keeps the default.
func Configure(enabled bool, dir string) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	observeEnabled = enabled
	eventsDir = dir
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	// Allow tests to enable mid-run via env override.
	if os.Getenv(EnvObserve) == "1" {
		return true
	}
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return observeEnabled
}

// EventsDir returns the directory events.jsonl is appended to.
func EventsDir() string {
	if v := os.Getenv(EnvEventsDir); v != "" {
		return v
	}
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if eventsDir != "" {
		return eventsDir
	}
	return DefaultEventsDir
}
