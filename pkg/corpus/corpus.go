// Package corpus persists counterexample seeds, keyed by property name,
// across property-test runs. It is a cache, not a source of truth: a
// missing or unreadable corpus degrades to "start fresh", never to an
// error a property run must handle.
package corpus

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"pkg.jsn.cam/genforge/pkg/storage"
)

// SchemaVersion is the corpus file format version this build writes and
// expects to read. It follows semver.Compare's "v"-prefixed form.
const SchemaVersion = "v1.0.0"

var metaBucket = []byte("__meta__")
var schemaKey = "schema_version"

// Entry is one recorded counterexample: the seed that reproduced a
// property failure, the size it was drawn at, and bookkeeping for
// prioritizing replay.
type Entry struct {
	Seed       int64     `json:"seed"`
	Size       int       `json:"size"`
	RunID      uuid.UUID `json:"run_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Corpus is a storage.Store of Entry values keyed by property name.
// Each property name is its own bucket; within a bucket, entries are
// keyed by their run ID so repeated failures from distinct runs don't
// overwrite each other. The store is pluggable: Open uses a bbolt file
// for durability across runs, NewMemory uses an in-process map for
// tests and one-shot CLI invocations that don't want a file.
type Corpus struct {
	store storage.Store
}

// Open opens (creating if necessary) a corpus file at path. It logs and
// proceeds — never errors — if the on-disk schema version is newer than
// SchemaVersion, since a corpus is disposable cache state.
func Open(path string) (*Corpus, error) {
	s, err := storage.OpenBbolt(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	c := &Corpus{store: s}
	if err := c.checkSchema(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return c, nil
}

// NewMemory builds a corpus backed by an in-memory store with no
// on-disk footprint, e.g. for a CLI run invoked without -corpus that
// still wants replay/record semantics within a single process.
func NewMemory() *Corpus {
	c := &Corpus{store: storage.NewMemoryStore()}
	if err := c.checkSchema(); err != nil {
		// A fresh in-memory store can't fail to initialize its own meta
		// bucket; if it does, the store implementation is broken.
		panic(fmt.Errorf("corpus: initializing in-memory store: %w", err))
	}
	return c
}

func (c *Corpus) checkSchema() error {
	if err := c.store.CreateBucket(metaBucket); err != nil {
		return fmt.Errorf("corpus: create meta bucket: %w", err)
	}
	stored, err := storage.GetString(c.store, metaBucket, schemaKey)
	if err != nil {
		return fmt.Errorf("corpus: read schema version: %w", err)
	}
	if stored == nil {
		log.Printf("[CORPUS] initializing corpus at schema %s", SchemaVersion)
		return storage.PutString(c.store, metaBucket, schemaKey, []byte(SchemaVersion))
	}
	onDisk := string(stored)
	if semver.Compare(onDisk, SchemaVersion) > 0 {
		log.Printf("[CORPUS] on-disk schema %s is newer than this build's %s; its entries are still read as this build's format", onDisk, SchemaVersion)
	}
	return nil
}

// Close closes the underlying store.
func (c *Corpus) Close() error {
	return c.store.Close()
}

// Record persists a counterexample for the named property, creating its
// bucket on first use. Logged with the [CORPUS] tag, matching the
// teacher's bracket-tag logging convention.
func (c *Corpus) Record(property string, e Entry) error {
	bucket := []byte(property)
	if err := c.store.CreateBucket(bucket); err != nil {
		return fmt.Errorf("corpus: create bucket %q: %w", property, err)
	}
	if err := storage.PutJSON(c.store, bucket, []byte(e.RunID.String()), e); err != nil {
		return fmt.Errorf("corpus: put entry: %w", err)
	}
	log.Printf("[CORPUS] recorded counterexample for %q: seed=%d size=%d run=%s", property, e.Seed, e.Size, e.RunID)
	return nil
}

// Replay returns every recorded counterexample for property, oldest
// first. A missing bucket (no prior failures) returns an empty slice,
// not an error.
func (c *Corpus) Replay(property string) ([]Entry, error) {
	bucket := []byte(property)
	exists, err := c.store.BucketExists(bucket)
	if err != nil {
		return nil, fmt.Errorf("corpus: check bucket %q: %w", property, err)
	}
	if !exists {
		return nil, nil
	}
	var entries []Entry
	err = storage.ForEachJSON(c.store, bucket, func(_ []byte, e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortEntriesByTime(entries)
	return entries, nil
}

// Prune deletes every recorded entry for property, e.g. once its
// counterexamples have all been fixed and re-verified. Logs with the
// [CORPUS] tag.
func (c *Corpus) Prune(property string) error {
	bucket := []byte(property)
	if err := c.store.DeleteBucket(bucket); err != nil {
		return fmt.Errorf("corpus: prune bucket %q: %w", property, err)
	}
	log.Printf("[CORPUS] pruned corpus entries for %q", property)
	return nil
}

func sortEntriesByTime(entries []Entry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].RecordedAt.Before(entries[j-1].RecordedAt); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
