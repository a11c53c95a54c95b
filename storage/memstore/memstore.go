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

package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dropmint/drop-emulator/storage"
	"github.com/dropmint/drop-emulator/types"
)

// Store implements the Store interface with an in-memory store.
type Store struct {
	mu sync.RWMutex
	// Maps block IDs to block heights
	blockIDToHeight map[types.Identifier]uint64
	// Finalized blocks indexed by block height
	blocks map[uint64]types.Block
	// Transactions by ID
	transactions map[types.Identifier]types.Transaction
	// Transaction results by ID
	transactionResults map[types.Identifier]types.StorableTransactionResult
	// Ledger states by block height
	ledger map[uint64]types.LedgerDelta
	// Stores events by block height
	eventsByBlockHeight map[uint64][]types.Event
	// Tracks the highest block height
	blockHeight uint64
}

// New returns a new in-memory Store implementation.
func New() *Store {
	return &Store{
		mu:                  sync.RWMutex{},
		blockIDToHeight:     make(map[types.Identifier]uint64),
		blocks:              make(map[uint64]types.Block),
		transactions:        make(map[types.Identifier]types.Transaction),
		transactionResults:  make(map[types.Identifier]types.StorableTransactionResult),
		ledger:              make(map[uint64]types.LedgerDelta),
		eventsByBlockHeight: make(map[uint64][]types.Event),
	}
}

var _ storage.Store = &Store{}

func (s *Store) BlockByID(ctx context.Context, blockID types.Identifier) (*types.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blockHeight, ok := s.blockIDToHeight[blockID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	block, ok := s.blocks[blockHeight]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &block, nil
}

func (s *Store) BlockByHeight(ctx context.Context, blockHeight uint64) (*types.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	block, ok := s.blocks[blockHeight]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &block, nil
}

func (s *Store) LatestBlock(ctx context.Context) (types.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latestBlock, ok := s.blocks[s.blockHeight]
	if !ok {
		return types.Block{}, storage.ErrNotFound
	}

	return latestBlock, nil
}

func (s *Store) CommitBlock(
	ctx context.Context,
	block types.Block,
	transactions []*types.Transaction,
	transactionResults []*types.StorableTransactionResult,
	delta types.LedgerDelta,
	events []types.Event,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(transactions) != len(transactionResults) {
		return fmt.Errorf(
			"transactions count (%d) does not match result count (%d)",
			len(transactions),
			len(transactionResults),
		)
	}

	s.insertBlock(block)

	for i, tx := range transactions {
		s.transactions[tx.ID()] = *tx
		s.transactionResults[tx.ID()] = *transactionResults[i]
	}

	s.insertLedgerDelta(block.Height, delta)
	s.insertEvents(block.Height, events)

	return nil
}

func (s *Store) insertBlock(block types.Block) {
	s.blocks[block.Height] = block
	s.blockIDToHeight[block.ID()] = block.Height

	if block.Height > s.blockHeight {
		s.blockHeight = block.Height
	}
}

func (s *Store) TransactionByID(ctx context.Context, transactionID types.Identifier) (types.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[transactionID]
	if !ok {
		return types.Transaction{}, storage.ErrNotFound
	}

	return tx, nil
}

func (s *Store) TransactionResultByID(ctx context.Context, transactionID types.Identifier) (types.StorableTransactionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.transactionResults[transactionID]
	if !ok {
		return types.StorableTransactionResult{}, storage.ErrNotFound
	}

	return result, nil
}

func (s *Store) LedgerByHeight(ctx context.Context, blockHeight uint64) (*types.LedgerView, error) {
	return types.NewLedgerView(func(registerID types.RegisterID) ([]byte, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		ledger, ok := s.ledger[blockHeight]
		if !ok {
			return nil, nil
		}

		return ledger[registerID], nil
	}), nil
}

func (s *Store) insertLedgerDelta(blockHeight uint64, delta types.LedgerDelta) {
	var oldLedger types.LedgerDelta

	// use empty ledger if this is the genesis block
	if blockHeight == 0 {
		oldLedger = make(types.LedgerDelta)
	} else {
		oldLedger = s.ledger[blockHeight-1]
	}

	newLedger := make(types.LedgerDelta)

	// copy values from the previous ledger
	for registerID, value := range oldLedger {
		newLedger[registerID] = value
	}

	// write all updated values
	for registerID, value := range delta.Updates() {
		if value != nil {
			newLedger[registerID] = value
		}
	}

	s.ledger[blockHeight] = newLedger
}

func (s *Store) insertEvents(blockHeight uint64, events []types.Event) {
	if s.eventsByBlockHeight[blockHeight] == nil {
		s.eventsByBlockHeight[blockHeight] = events
	} else {
		s.eventsByBlockHeight[blockHeight] = append(s.eventsByBlockHeight[blockHeight], events...)
	}
}

func (s *Store) EventsByHeight(ctx context.Context, blockHeight uint64, eventType string) ([]types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allEvents := s.eventsByBlockHeight[blockHeight]

	events := make([]types.Event, 0)

	for _, event := range allEvents {
		if eventType == "" {
			events = append(events, event)
		} else {
			if event.Type == eventType {
				events = append(events, event)
			}
		}
	}

	return events, nil
}
