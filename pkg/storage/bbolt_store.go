package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// BboltStore is a Store backed by a bbolt file, for a corpus that
// should survive across process runs.
type BboltStore struct {
	db *bolt.DB
}

// OpenBbolt opens (creating if necessary) a bbolt database at path.
func OpenBbolt(path string) (*BboltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bbolt database %s: %w", path, err)
	}
	return &BboltStore{db: db}, nil
}

func (b *BboltStore) CreateBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

func (b *BboltStore) DeleteBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(name)
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}

func (b *BboltStore) BucketExists(name []byte) (bool, error) {
	exists := false
	err := b.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(name) != nil
		return nil
	})
	return exists, err
}

func (b *BboltStore) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("storage: bucket not found: %s", bucket)
		}
		return bkt.Put(key, value)
	})
}

func (b *BboltStore) Get(bucket, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("storage: bucket not found: %s", bucket)
		}
		if v := bkt.Get(key); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	return value, err
}

func (b *BboltStore) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("storage: bucket not found: %s", bucket)
		}
		return bkt.ForEach(fn)
	})
}

func (b *BboltStore) Close() error {
	return b.db.Close()
}
