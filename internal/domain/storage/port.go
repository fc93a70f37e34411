// Package storage defines the port through which the hosted-service
// supervisor persists the one piece of state the core keeps across a
// restart of the host process itself (§6.5): each entry's RunStats and
// whether the backoff scheduler has permanently disabled it.
package storage

import (
	"context"

	"github.com/coreward/activation-host/internal/domain/runstats"
)

// RunStatsRecord is the persisted snapshot for one hosted service.
type RunStatsRecord struct {
	// Stats is the entry's activation/exit counters at the time of save.
	Stats runstats.RunStats
	// Disabled reports whether the backoff scheduler had permanently
	// disabled the entry (§4.2: failure budget exceeded).
	Disabled bool
}

// RunStatsStore persists and retrieves RunStatsRecord values keyed by
// hosted-service name. Implementations must tolerate Load being called
// for a name that was never saved.
type RunStatsStore interface {
	// Save persists record for serviceName, replacing any prior value.
	Save(ctx context.Context, serviceName string, record RunStatsRecord) error
	// Load retrieves the record for serviceName. The second return value
	// is false if nothing has been saved for that name.
	Load(ctx context.Context, serviceName string) (RunStatsRecord, bool, error)
	// LoadAll retrieves every persisted record, keyed by service name,
	// used on startup to seed every declared entry in one pass.
	LoadAll(ctx context.Context) (map[string]RunStatsRecord, error)
	// Delete removes the record for serviceName, called once a service
	// is no longer declared (§4.7 step 2).
	Delete(ctx context.Context, serviceName string) error
	// Close releases the underlying storage resource.
	Close() error
}

// StoreConfig configures a RunStatsStore implementation.
type StoreConfig struct {
	// Path is the on-disk file path for the store.
	Path string
}

// DefaultStoreConfig returns the default RunStats store configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{Path: "/var/lib/activation-host/runstats.db"}
}
