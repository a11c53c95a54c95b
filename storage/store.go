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

// Package storage defines the interface and implementations for persisting
// emulated contract state.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropmint/drop-emulator/types"
)

// ErrNotFound is returned when an entity cannot be found.
var ErrNotFound = errors.New("could not find entity")

// Store defines the storage layer for committed emulator state.
//
// This includes sealed blocks, transactions, transaction results, emitted
// events and the resulting ledger registers. It does not include pending
// state.
//
// Implementations must distinguish between not found errors and errors with
// the underlying storage by returning ErrNotFound if an entity cannot be
// found.
//
// Implementations must be safe for use by multiple goroutines.
type Store interface {

	// LatestBlock returns the block with the highest height.
	LatestBlock(ctx context.Context) (types.Block, error)

	// BlockByID returns the block with the given ID.
	BlockByID(ctx context.Context, blockID types.Identifier) (*types.Block, error)

	// BlockByHeight returns the block at the given height.
	BlockByHeight(ctx context.Context, blockHeight uint64) (*types.Block, error)

	// CommitBlock atomically saves the execution results of a block.
	CommitBlock(
		ctx context.Context,
		block types.Block,
		transactions []*types.Transaction,
		transactionResults []*types.StorableTransactionResult,
		delta types.LedgerDelta,
		events []types.Event,
	) error

	// TransactionByID gets the transaction with the given ID.
	TransactionByID(ctx context.Context, transactionID types.Identifier) (types.Transaction, error)

	// TransactionResultByID gets the transaction result with the given ID.
	TransactionResultByID(ctx context.Context, transactionID types.Identifier) (types.StorableTransactionResult, error)

	// LedgerByHeight returns a view into the ledger state at a given block.
	LedgerByHeight(ctx context.Context, blockHeight uint64) (*types.LedgerView, error)

	// EventsByHeight returns the events in the block at the given height,
	// optionally filtered by type.
	EventsByHeight(ctx context.Context, blockHeight uint64, eventType string) ([]types.Event, error)
}

// SnapshotProvider is implemented by stores that support named state
// snapshots.
type SnapshotProvider interface {
	Store
	JumpToContext(context string) error
}

// DataGetter reads raw values from an underlying key-value store.
type DataGetter interface {
	GetBytes(ctx context.Context, store string, key []byte) ([]byte, error)
	GetBytesAtVersion(ctx context.Context, store string, key []byte, version uint64) ([]byte, error)
}

// DataSetter writes raw values to an underlying key-value store. Versioned
// writes must be readable by GetBytesAtVersion at any version greater than or
// equal to the written one.
type DataSetter interface {
	SetBytes(ctx context.Context, store string, key []byte, value []byte) error
	SetBytesWithVersion(ctx context.Context, store string, key []byte, value []byte, version uint64) error
}

// KeyGenerator produces the keys under which entities are stored.
type KeyGenerator interface {
	BlockKey(blockHeight uint64) []byte
	BlockIndexKey(blockID types.Identifier) []byte
	LatestBlockKey() []byte
	TransactionKey(transactionID types.Identifier) []byte
	TransactionResultKey(transactionID types.Identifier) []byte
	EventsKey(blockHeight uint64) []byte
	LedgerKey(registerID types.RegisterID) []byte
}

// Store names used by DefaultStore. SQL-backed implementations use these as
// table names, key-value implementations as key prefixes.
const (
	GlobalStoreName             = "global"
	BlockStoreName              = "blocks"
	BlockIndexStoreName         = "blockIndex"
	TransactionStoreName        = "transactions"
	TransactionResultStoreName  = "transactionResults"
	EventStoreName              = "events"
	LedgerStoreName             = "ledger"
)

// StoreNames lists every store name used by DefaultStore.
var StoreNames = []string{
	GlobalStoreName,
	BlockStoreName,
	BlockIndexStoreName,
	TransactionStoreName,
	TransactionResultStoreName,
	EventStoreName,
	LedgerStoreName,
}

// DefaultKeyGenerator is the standard key scheme. Keys with a numeric
// component (block height) are left-padded with zeros (%032d) so that
// lexicographic ordering matches numeric ordering.
type DefaultKeyGenerator struct{}

func (g *DefaultKeyGenerator) BlockKey(blockHeight uint64) []byte {
	return []byte(fmt.Sprintf("%032d", blockHeight))
}

func (g *DefaultKeyGenerator) BlockIndexKey(blockID types.Identifier) []byte {
	return blockID.Bytes()
}

func (g *DefaultKeyGenerator) LatestBlockKey() []byte {
	return []byte("latest_block_height")
}

func (g *DefaultKeyGenerator) TransactionKey(transactionID types.Identifier) []byte {
	return transactionID.Bytes()
}

func (g *DefaultKeyGenerator) TransactionResultKey(transactionID types.Identifier) []byte {
	return transactionID.Bytes()
}

func (g *DefaultKeyGenerator) EventsKey(blockHeight uint64) []byte {
	return []byte(fmt.Sprintf("%032d", blockHeight))
}

func (g *DefaultKeyGenerator) LedgerKey(registerID types.RegisterID) []byte {
	return []byte(registerID)
}

var _ KeyGenerator = &DefaultKeyGenerator{}

// DefaultStore implements the Store interface on top of a raw key-value
// layer. Embedded implementations provide DataGetter, DataSetter and
// KeyGenerator and inherit the full Store behavior.
type DefaultStore struct {
	DataGetter
	DataSetter
	KeyGenerator
}

func (s *DefaultStore) LatestBlockHeight(ctx context.Context) (uint64, error) {
	value, err := s.GetBytes(ctx, GlobalStoreName, s.LatestBlockKey())
	if err != nil {
		return 0, err
	}

	var height uint64
	if err := decodeUint64(&height, value); err != nil {
		return 0, err
	}

	return height, nil
}

func (s *DefaultStore) LatestBlock(ctx context.Context) (types.Block, error) {
	height, err := s.LatestBlockHeight(ctx)
	if err != nil {
		return types.Block{}, err
	}

	block, err := s.BlockByHeight(ctx, height)
	if err != nil {
		return types.Block{}, err
	}

	return *block, nil
}

func (s *DefaultStore) BlockByID(ctx context.Context, blockID types.Identifier) (*types.Block, error) {
	value, err := s.GetBytes(ctx, BlockIndexStoreName, s.BlockIndexKey(blockID))
	if err != nil {
		return nil, err
	}

	var height uint64
	if err := decodeUint64(&height, value); err != nil {
		return nil, err
	}

	return s.BlockByHeight(ctx, height)
}

func (s *DefaultStore) BlockByHeight(ctx context.Context, blockHeight uint64) (*types.Block, error) {
	value, err := s.GetBytes(ctx, BlockStoreName, s.BlockKey(blockHeight))
	if err != nil {
		return nil, err
	}

	var block types.Block
	if err := decodeBlock(&block, value); err != nil {
		return nil, err
	}

	return &block, nil
}

func (s *DefaultStore) CommitBlock(
	ctx context.Context,
	block types.Block,
	transactions []*types.Transaction,
	transactionResults []*types.StorableTransactionResult,
	delta types.LedgerDelta,
	events []types.Event,
) error {
	if len(transactions) != len(transactionResults) {
		return fmt.Errorf(
			"transactions count (%d) does not match result count (%d)",
			len(transactions),
			len(transactionResults),
		)
	}

	if err := s.insertBlock(ctx, block); err != nil {
		return err
	}

	for i, tx := range transactions {
		if err := s.insertTransaction(ctx, *tx); err != nil {
			return err
		}

		if err := s.insertTransactionResult(ctx, *transactionResults[i]); err != nil {
			return err
		}
	}

	if err := s.insertLedgerDelta(ctx, block.Height, delta); err != nil {
		return err
	}

	return s.insertEvents(ctx, block.Height, events)
}

func (s *DefaultStore) insertBlock(ctx context.Context, block types.Block) error {
	encBlock, err := encodeBlock(block)
	if err != nil {
		return err
	}

	encHeight, err := encodeUint64(block.Height)
	if err != nil {
		return err
	}

	err = s.SetBytes(ctx, BlockStoreName, s.BlockKey(block.Height), encBlock)
	if err != nil {
		return err
	}

	err = s.SetBytes(ctx, BlockIndexStoreName, s.BlockIndexKey(block.ID()), encHeight)
	if err != nil {
		return err
	}

	// the latest height only moves forward
	latest, err := s.LatestBlockHeight(ctx)
	if err == nil && latest >= block.Height && block.Height != 0 {
		return nil
	}

	return s.SetBytes(ctx, GlobalStoreName, s.LatestBlockKey(), encHeight)
}

func (s *DefaultStore) insertTransaction(ctx context.Context, tx types.Transaction) error {
	enc, err := encodeTransaction(tx)
	if err != nil {
		return err
	}

	return s.SetBytes(ctx, TransactionStoreName, s.TransactionKey(tx.ID()), enc)
}

func (s *DefaultStore) insertTransactionResult(ctx context.Context, result types.StorableTransactionResult) error {
	enc, err := encodeTransactionResult(result)
	if err != nil {
		return err
	}

	return s.SetBytes(ctx, TransactionResultStoreName, s.TransactionResultKey(result.TransactionID), enc)
}

func (s *DefaultStore) insertLedgerDelta(ctx context.Context, blockHeight uint64, delta types.LedgerDelta) error {
	for registerID, value := range delta.Updates() {
		err := s.SetBytesWithVersion(ctx, LedgerStoreName, s.LedgerKey(registerID), value, blockHeight)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *DefaultStore) insertEvents(ctx context.Context, blockHeight uint64, events []types.Event) error {
	enc, err := encodeEvents(events)
	if err != nil {
		return err
	}

	return s.SetBytes(ctx, EventStoreName, s.EventsKey(blockHeight), enc)
}

func (s *DefaultStore) TransactionByID(ctx context.Context, transactionID types.Identifier) (types.Transaction, error) {
	value, err := s.GetBytes(ctx, TransactionStoreName, s.TransactionKey(transactionID))
	if err != nil {
		return types.Transaction{}, err
	}

	var tx types.Transaction
	if err := decodeTransaction(&tx, value); err != nil {
		return types.Transaction{}, err
	}

	return tx, nil
}

func (s *DefaultStore) TransactionResultByID(ctx context.Context, transactionID types.Identifier) (types.StorableTransactionResult, error) {
	value, err := s.GetBytes(ctx, TransactionResultStoreName, s.TransactionResultKey(transactionID))
	if err != nil {
		return types.StorableTransactionResult{}, err
	}

	var result types.StorableTransactionResult
	if err := decodeTransactionResult(&result, value); err != nil {
		return types.StorableTransactionResult{}, err
	}

	return result, nil
}

// LedgerByHeight returns a read-through view into the ledger as of the given
// block height. Reads resolve to the latest register write at or below the
// height; a register never written resolves to nil.
func (s *DefaultStore) LedgerByHeight(ctx context.Context, blockHeight uint64) (*types.LedgerView, error) {
	return types.NewLedgerView(func(registerID types.RegisterID) ([]byte, error) {
		value, err := s.GetBytesAtVersion(ctx, LedgerStoreName, s.LedgerKey(registerID), blockHeight)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}

		return value, nil
	}), nil
}

func (s *DefaultStore) EventsByHeight(ctx context.Context, blockHeight uint64, eventType string) ([]types.Event, error) {
	value, err := s.GetBytes(ctx, EventStoreName, s.EventsKey(blockHeight))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []types.Event{}, nil
		}
		return nil, err
	}

	var allEvents []types.Event
	if err := decodeEvents(&allEvents, value); err != nil {
		return nil, err
	}

	if eventType == "" {
		return allEvents, nil
	}

	events := make([]types.Event, 0)
	for _, event := range allEvents {
		if event.Type == eventType {
			events = append(events, event)
		}
	}

	return events, nil
}
