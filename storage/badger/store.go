/*
 * Drop Emulator
 *
 * Copyright Dropmint Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/go-git/go-git/v5"

	"github.com/dropmint/drop-emulator/storage"
)

// Store is an embedded storage implementation using Badger as the underlying
// persistent key-value store.
type Store struct {
	storage.DefaultStore
	config          Config
	db              *badger.DB
	dbGitRepository *git.Repository
}

var _ storage.Store = &Store{}

func badgerKey(store string, key []byte) []byte {
	return []byte(fmt.Sprintf("%s-%x", store, key))
}

func badgerVersionedKey(store string, key []byte, version uint64) []byte {
	return []byte(fmt.Sprintf("%s-%x-%032d", store, key, version))
}

// New opens a Badger-backed store with the provided options.
func New(opts ...Opt) (*Store, error) {
	config := getBadgerConfig(opts...)
	config.BadgerOptions.BypassLockGuard = false

	db, err := badger.Open(config.BadgerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	_ = db.Sync()

	store := &Store{db: db, config: config}
	store.DataGetter = store
	store.DataSetter = store
	store.KeyGenerator = &storage.DefaultKeyGenerator{}

	if err = store.setup(); err != nil {
		return nil, err
	}

	return store, nil
}

// getTx returns a getter function bound to the input transaction that can be
// used to get values from Badger.
//
// The getter function checks for key-not-found errors and wraps them in
// storage.ErrNotFound in order to comply with the storage.Store interface.
func getTx(txn *badger.Txn) func([]byte) ([]byte, error) {
	return func(key []byte) ([]byte, error) {
		// Badger returns an "item" upon GETs, we need to copy the actual
		// value from the item and return it.
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil, storage.ErrNotFound
			}
			return nil, err
		}

		val := make([]byte, item.ValueSize())
		return item.ValueCopy(val)
	}
}

func (s *Store) GetBytes(ctx context.Context, store string, key []byte) (result []byte, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		result, err = getTx(txn)(badgerKey(store, key))
		if err != nil {
			return err
		}
		return nil
	})
	return
}

func (s *Store) SetBytes(ctx context.Context, store string, key []byte, value []byte) (err error) {
	err = s.db.Update(func(txn *badger.Txn) error {
		err := txn.Set(badgerKey(store, key), value)
		return err
	})
	return
}

func (s *Store) SetBytesWithVersion(ctx context.Context, store string, key []byte, value []byte, version uint64) (err error) {
	err = s.db.Update(func(txn *badger.Txn) error {
		err := txn.Set(badgerVersionedKey(store, key, version), value)
		return err
	})
	return
}

func (s *Store) GetBytesAtVersion(ctx context.Context, store string, key []byte, version uint64) (result []byte, err error) {
	iterOpts := badger.DefaultIteratorOptions
	iterOpts.Reverse = true
	iterOpts.Prefix = []byte(fmt.Sprintf("%s-%x-", store, key))
	startKey := badgerVersionedKey(store, key, version)

	err = s.db.View(func(txn *badger.Txn) error {
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()
		iter.Seek(startKey)

		if !iter.Valid() {
			err = storage.ErrNotFound
			return err
		}

		item := iter.Item()
		result, err = item.ValueCopy([]byte{})
		return err
	})

	return
}

// Close closes the underlying Badger database. It is necessary to close
// a Store before exiting to ensure all writes are persisted to disk.
func (s *Store) Close() error {
	err := s.db.Close()
	if err != nil {
		return err
	}

	if s.config.Snapshot {
		defer s.unlockGit()
		return s.newCommit("Emulator Ended Session")
	}

	return nil
}

// Sync syncs database content to disk.
func (s *Store) Sync() error {
	if s.config.InMemory {
		return nil
	}
	return s.db.Sync()
}

// RunValueLogGC cleans up the Badger value log, reclaiming at least
// discardRatio space from rewritten files.
func (s *Store) RunValueLogGC(discardRatio float64) error {
	if s.config.InMemory {
		return nil
	}
	err := s.db.RunValueLogGC(discardRatio)

	// ignore ErrNoRewrite, which occurs when GC results in no cleanup
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}

	return nil
}
