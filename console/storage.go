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

package console

import (
	"time"

	"github.com/psiemens/graceland"
	"github.com/sirupsen/logrus"

	"github.com/dropmint/drop-emulator/storage"
	"github.com/dropmint/drop-emulator/storage/badger"
	"github.com/dropmint/drop-emulator/storage/memstore"
	"github.com/dropmint/drop-emulator/storage/redis"
	"github.com/dropmint/drop-emulator/storage/sqlite"
)

// Storage bundles a storage backend with its session lifecycle.
type Storage interface {
	graceland.Routine
	Store() storage.Store
}

// configureStorage selects the storage backend for a session. Explicit
// backend URLs win over the Badger persistence flag; the fallback is an
// in-memory store.
func configureStorage(logger *logrus.Logger, conf *Config) (Storage, error) {
	if conf.RedisURL != "" {
		return NewRedisStorage(conf.RedisURL)
	}

	if conf.SqliteURL != "" {
		return NewSqliteStorage(conf.SqliteURL)
	}

	if conf.Persist {
		return NewBadgerStorage(logger, conf.DBPath, conf.DBGCInterval, conf.DBGCDiscardRatio, conf.Snapshot)
	}

	return NewMemoryStorage(), nil
}

// badgerLogger routes Badger system logs through logrus at debug level.
type badgerLogger struct {
	*logrus.Logger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(format, args...)
}

// BadgerStorage runs a Badger store and garbage collects its value log at a
// fixed interval for the lifetime of the session.
type BadgerStorage struct {
	store          *badger.Store
	gcInterval     time.Duration
	gcDiscardRatio float64
	done           chan struct{}
}

func NewBadgerStorage(
	logger *logrus.Logger,
	dbPath string,
	gcInterval time.Duration,
	gcDiscardRatio float64,
	snapshot bool,
) (*BadgerStorage, error) {
	store, err := badger.New(
		badger.WithPath(dbPath),
		badger.WithLogger(badgerLogger{logger}),
		badger.WithSnapshot(snapshot),
		badger.WithTruncate(true),
	)
	if err != nil {
		return nil, err
	}

	return &BadgerStorage{
		store:          store,
		gcInterval:     gcInterval,
		gcDiscardRatio: gcDiscardRatio,
		done:           make(chan struct{}),
	}, nil
}

func (s *BadgerStorage) Start() error {
	ticker := time.NewTicker(s.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.store.RunValueLogGC(s.gcDiscardRatio)
			if err != nil {
				return err
			}
		case <-s.done:
			return nil
		}
	}
}

func (s *BadgerStorage) Stop() {
	close(s.done)
	_ = s.store.Close()
}

func (s *BadgerStorage) Store() storage.Store {
	return s.store
}

type MemoryStorage struct {
	store *memstore.Store
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{store: memstore.New()}
}

func (s *MemoryStorage) Start() error {
	return nil
}

func (s *MemoryStorage) Stop() {}

func (s *MemoryStorage) Store() storage.Store {
	return s.store
}

type SqliteStorage struct {
	store *sqlite.Store
}

func NewSqliteStorage(url string) (*SqliteStorage, error) {
	db, err := sqlite.New(url)
	if err != nil {
		return nil, err
	}
	return &SqliteStorage{store: db}, nil
}

func (s *SqliteStorage) Start() error {
	return nil
}

func (s *SqliteStorage) Stop() {
	_ = s.store.Close()
}

func (s *SqliteStorage) Store() storage.Store {
	return s.store
}

type RedisStorage struct {
	store *redis.Store
}

func NewRedisStorage(url string) (*RedisStorage, error) {
	rdb, err := redis.New(url)
	if err != nil {
		return nil, err
	}
	return &RedisStorage{store: rdb}, nil
}

func (s *RedisStorage) Start() error {
	return nil
}

func (s *RedisStorage) Stop() {
	_ = s.store.Close()
}

func (s *RedisStorage) Store() storage.Store {
	return s.store
}
