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

package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/dropmint/drop-emulator/storage"
)

// InMemory is the URL for a non-persistent database.
const InMemory = ":memory:"

// Store implements the Store interface with a SQLite database.
type Store struct {
	storage.DefaultStore
	db  *sql.DB
	url string
}

var _ storage.Store = &Store{}

// New opens a SQLite-backed store at the given URL.
func New(url string) (*Store, error) {
	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}

	for _, name := range storage.StoreNames {
		_, err = db.Exec(fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (key TEXT, value TEXT, version INTEGER, UNIQUE(key, version))",
			name,
		))
		if err != nil {
			return nil, err
		}
	}

	store := &Store{
		db:  db,
		url: url,
	}
	store.DataSetter = store
	store.DataGetter = store
	store.KeyGenerator = &storage.DefaultKeyGenerator{}

	return store, nil
}

func (s *Store) GetBytes(ctx context.Context, store string, key []byte) ([]byte, error) {
	return s.GetBytesAtVersion(ctx, store, key, 0)
}

func (s *Store) SetBytes(ctx context.Context, store string, key []byte, value []byte) error {
	return s.SetBytesWithVersion(ctx, store, key, value, 0)
}

func (s *Store) SetBytesWithVersion(ctx context.Context, store string, key []byte, value []byte, version uint64) error {
	_, err := s.db.ExecContext(
		ctx,
		fmt.Sprintf(
			"INSERT INTO %s (key, version, value) VALUES (?, ?, ?) ON CONFLICT(key, version) DO UPDATE SET value=excluded.value",
			store,
		),
		hex.EncodeToString(key),
		version,
		hex.EncodeToString(value),
	)
	return err
}

func (s *Store) GetBytesAtVersion(ctx context.Context, store string, key []byte, version uint64) ([]byte, error) {
	// version 0 requests the unversioned value; ledger reads at genesis also
	// resolve here because genesis registers are written at version 0
	query := fmt.Sprintf(
		"SELECT value FROM %s WHERE key = ? AND version <= ? ORDER BY version DESC LIMIT 1",
		store,
	)

	rows, err := s.db.QueryContext(ctx, query, hex.EncodeToString(key), version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		rawBytes, err := hex.DecodeString(value)
		if err != nil {
			return nil, err
		}
		return rawBytes, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nil, storage.ErrNotFound
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
