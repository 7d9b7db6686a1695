package store

import (
	"errors"
	"fmt"

	"github.com/nutsdb/nutsdb"
)

// bucket is the single nutsdb bucket this node's key/value pairs live in;
// the store has no notion of namespacing beyond the flat key space
// spec.md §3 describes.
const bucket = "lichtenstein"

// NutsDBStore backs DataStore with github.com/nutsdb/nutsdb, the teacher's
// own embedded KV engine (`config/components/nutsdb` wraps the same
// library for a clustered deployment; this node needs none of that
// clustering, only the engine's single-node Get/Put/Delete, so it talks to
// nutsdb directly rather than carrying the cluster wrapper's raft/gossip
// configuration surface).
type NutsDBStore struct {
	db *nutsdb.DB
}

// OpenNutsDBStore opens (creating if absent) a nutsdb database rooted at
// dir.
func OpenNutsDBStore(dir string) (*NutsDBStore, error) {
	db, err := nutsdb.Open(nutsdb.DefaultOptions, nutsdb.WithDir(dir))
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	return &NutsDBStore{db: db}, nil
}

func (s *NutsDBStore) Get(key string) (string, bool, error) {
	var value string
	found := true

	err := s.db.View(func(tx *nutsdb.Tx) error {
		entry, err := tx.Get(bucket, []byte(key))
		if err != nil {
			if errors.Is(err, nutsdb.ErrKeyNotFound) || errors.Is(err, nutsdb.ErrBucketNotExist) {
				found = false
				return nil
			}
			return err
		}
		value = string(entry.Value)
		return nil
	})
	if err != nil {
		return "", false, ErrorGet.Error(fmt.Errorf("key %q: %w", key, err))
	}
	return value, found, nil
}

func (s *NutsDBStore) Set(key, value string) error {
	err := s.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(bucket, []byte(key), []byte(value), 0)
	})
	if err != nil {
		return ErrorSet.Error(fmt.Errorf("key %q: %w", key, err))
	}
	return nil
}

func (s *NutsDBStore) Delete(key string) error {
	err := s.db.Update(func(tx *nutsdb.Tx) error {
		err := tx.Delete(bucket, []byte(key))
		if errors.Is(err, nutsdb.ErrKeyNotFound) || errors.Is(err, nutsdb.ErrBucketNotExist) {
			return nil
		}
		return err
	})
	if err != nil {
		return ErrorDelete.Error(fmt.Errorf("key %q: %w", key, err))
	}
	return nil
}

func (s *NutsDBStore) Close() error {
	if err := s.db.Close(); err != nil {
		return ErrorClose.Error(err)
	}
	return nil
}
