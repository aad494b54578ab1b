// Package storage is the bucketed key-value layer pkg/corpus persists
// counterexamples through. It carries only the surface corpus actually
// drives — a bucket per property, JSON-encoded entries keyed by run ID,
// plus a schema-version string in a reserved bucket — not a
// general-purpose transactional KV store.
package storage

import (
	"encoding/json"
	"fmt"
)

// Store is a bucketed byte-string key-value store. A bucket must be
// created before it can be written to; reading a key in a bucket that
// was never created is an error, but reading a key that was never set
// within an existing bucket returns (nil, nil).
type Store interface {
	CreateBucket(name []byte) error
	DeleteBucket(name []byte) error
	BucketExists(name []byte) (bool, error)

	Put(bucket, key, value []byte) error
	Get(bucket, key []byte) ([]byte, error)

	// ForEach visits every key-value pair in bucket. fn's error, if
	// non-nil, stops iteration and is returned.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}

// PutString is a convenience wrapper for string-keyed values, used for
// the corpus schema-version marker.
func PutString(s Store, bucket []byte, key string, value []byte) error {
	return s.Put(bucket, []byte(key), value)
}

// GetString mirrors PutString.
func GetString(s Store, bucket []byte, key string) ([]byte, error) {
	return s.Get(bucket, []byte(key))
}

// PutJSON JSON-encodes v and stores it under key in bucket.
func PutJSON(s Store, bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode json: %w", err)
	}
	return s.Put(bucket, key, data)
}

// ForEachJSON visits every value in bucket, JSON-decoding it into a
// fresh *T before calling fn with the key and decoded value. A value
// that fails to decode stops iteration and returns the decode error.
func ForEachJSON[T any](s Store, bucket []byte, fn func(k []byte, v T) error) error {
	return s.ForEach(bucket, func(k, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("storage: decode json for key %q: %w", k, err)
		}
		return fn(k, v)
	})
}
