//go:build linux

// Package boltdb persists hosted-service RunStats across restarts of the
// host process itself (§6.5), the only on-disk artifact this core owns
// beyond its own logs. It adapts the teacher's metrics-persistence
// adapter's schema/bucket/gob-encoding conventions to a single
// bucket keyed by service name instead of a time-series one.
package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/coreward/activation-host/internal/domain/storage"
)

// Bucket and metadata-key names, matching the teacher's layout.
var (
	bucketRunStats = []byte("run_stats")
	bucketMetadata = []byte("metadata")
	keyVersion     = []byte("version")
	keyCreated     = []byte("created")
)

// schemaVersion is the current on-disk schema version.
const schemaVersion = 1

// Store implements storage.RunStatsStore using BoltDB.
type Store struct {
	db *bolt.DB
}

// New opens (creating if necessary) the BoltDB file at config.Path and
// initializes its schema.
func New(config storage.StoreConfig) (*Store, error) {
	db, err := bolt.Open(config.Path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open boltdb: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRunStats); err != nil {
			return fmt.Errorf("create run_stats bucket: %w", err)
		}

		meta, err := tx.CreateBucketIfNotExists(bucketMetadata)
		if err != nil {
			return fmt.Errorf("create metadata bucket: %w", err)
		}

		if meta.Get(keyVersion) == nil {
			if err := meta.Put(keyVersion, int64ToBytes(schemaVersion)); err != nil {
				return err
			}
			if err := meta.Put(keyCreated, int64ToBytes(time.Now().UnixNano())); err != nil {
				return err
			}
		}
		return nil
	})
}

// Save persists record for serviceName, replacing any prior value.
func (s *Store) Save(ctx context.Context, serviceName string, record storage.RunStatsRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := encode(record)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRunStats).Put([]byte(serviceName), value)
	})
}

// Load retrieves the record for serviceName.
func (s *Store) Load(ctx context.Context, serviceName string) (storage.RunStatsRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return storage.RunStatsRecord{}, false, err
	}

	var record storage.RunStatsRecord
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketRunStats).Get([]byte(serviceName))
		if value == nil {
			return nil
		}
		found = true
		return decode(value, &record)
	})
	return record, found, err
}

// LoadAll retrieves every persisted record, keyed by service name.
func (s *Store) LoadAll(ctx context.Context) (map[string]storage.RunStatsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make(map[string]storage.RunStatsRecord)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRunStats).ForEach(func(k, v []byte) error {
			var record storage.RunStatsRecord
			if err := decode(v, &record); err != nil {
				return err
			}
			result[string(k)] = record
			return nil
		})
	})
	return result, err
}

// Delete removes the record for serviceName. Deleting an absent key is a
// no-op, matching BoltDB's own Delete semantics.
func (s *Store) Delete(ctx context.Context, serviceName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRunStats).Delete([]byte(serviceName))
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// int64ToBytes converts an int64 to big-endian bytes, used for the
// metadata timestamps, which are always positive since the Unix epoch.
func int64ToBytes(n int64) []byte {
	buf := make([]byte, 8)
	//nolint:gosec // G115: safe conversion, timestamps are positive since the Unix epoch
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

// encode serializes a value using gob.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

// decode deserializes a value using gob.
func decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
