package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// Fixed keys for the two persisted records.
const (
	ClientRecordKey = "client-record"
	AuditRecordKey  = "audit-record"
)

// RecordStore provides whole-record JSON I/O for a single fixed key on a
// Backend. There is no field-level update: callers read-modify-write the full
// record, and the last write wins.
//
// A malformed stored payload is treated exactly like a missing one. The
// records carry no schema version; absent-or-malformed-means-absent is the
// only forward-compatibility mechanism, so corruption must never surface as a
// fatal error.
type RecordStore[T any] struct {
	backend Backend
	key     string
	log     zerolog.Logger
}

// NewRecordStore creates a store for type T under the given key.
func NewRecordStore[T any](backend Backend, key string, log zerolog.Logger) *RecordStore[T] {
	return &RecordStore[T]{backend: backend, key: key, log: log}
}

// Key returns the fixed record key.
func (s *RecordStore[T]) Key() string {
	return s.key
}

// Load reads and parses the record. The boolean reports presence: false for
// a missing key, an unreadable backend value, or a payload that does not
// parse as T.
func (s *RecordStore[T]) Load() (T, bool, error) {
	var record T

	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		s.log.Debug().Err(err).Str("key", s.key).Msg("record read failed, treating as absent")
		return record, false, nil
	}
	if !ok {
		return record, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.log.Debug().Err(err).Str("key", s.key).Msg("record malformed, treating as absent")
		var zero T
		return zero, false, nil
	}

	return record, true, nil
}

// Save serializes and writes the record, replacing any prior value.
func (s *RecordStore[T]) Save(record T) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", s.key, err)
	}

	if err := s.backend.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist record %s: %w", s.key, err)
	}

	return nil
}

// NewClientStore creates the store for the client record.
func NewClientStore(backend Backend, log zerolog.Logger) *RecordStore[types.Client] {
	return NewRecordStore[types.Client](backend, ClientRecordKey, log)
}

// NewAuditStore creates the store for the audit record, including its
// embedded controls and cover metadata.
func NewAuditStore(backend Backend, log zerolog.Logger) *RecordStore[types.Audit] {
	return NewRecordStore[types.Audit](backend, AuditRecordKey, log)
}
