package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreward/activation-host/internal/domain/runstats"
	"github.com/coreward/activation-host/internal/domain/storage"
)

func TestDefaultStoreConfig(t *testing.T) {
	cfg := storage.DefaultStoreConfig()
	assert.Equal(t, "/var/lib/activation-host/runstats.db", cfg.Path)
}

func TestRunStatsRecord_Fields(t *testing.T) {
	record := storage.RunStatsRecord{
		Stats:    runstats.RunStats{ActivationCount: 3, ExitCount: 2},
		Disabled: true,
	}

	assert.Equal(t, 3, record.Stats.ActivationCount)
	assert.Equal(t, 2, record.Stats.ExitCount)
	assert.True(t, record.Disabled)
}
