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

package emulator

import (
	"time"

	"github.com/dropmint/drop-emulator/types"
)

// A pendingBlock contains the pending state required to form a new block.
type pendingBlock struct {
	height   uint64
	parentID types.Identifier
	// mapping from transaction ID to transaction
	transactions map[types.Identifier]*types.Transaction
	// list of transaction IDs in the block
	transactionIDs []types.Identifier
	// mapping from transaction ID to transaction result
	transactionResults map[types.Identifier]*types.TransactionResult
	// current working ledger, updated after each transaction execution
	ledgerView *types.LedgerView
	// events emitted during execution
	events []types.Event
	// index of transaction execution
	index int
}

// newPendingBlock creates a new pending block sequentially after a specified block.
func newPendingBlock(prevBlock types.Block, ledgerView *types.LedgerView) *pendingBlock {
	return &pendingBlock{
		height:             prevBlock.Height + 1,
		parentID:           prevBlock.ID(),
		transactions:       make(map[types.Identifier]*types.Transaction),
		transactionIDs:     make([]types.Identifier, 0),
		transactionResults: make(map[types.Identifier]*types.TransactionResult),
		ledgerView:         ledgerView,
		events:             make([]types.Event, 0),
		index:              0,
	}
}

// ID returns the ID of the pending block.
func (b *pendingBlock) ID() types.Identifier {
	return b.Block().ID()
}

// Height returns the number of the pending block.
func (b *pendingBlock) Height() uint64 {
	return b.height
}

// Block returns the block information for the pending block.
func (b *pendingBlock) Block() types.Block {
	return types.Block{
		Height:         b.height,
		ParentID:       b.parentID,
		Timestamp:      time.Now().UTC(),
		TransactionIDs: b.transactionIDs,
	}
}

// Transactions returns the transactions in the pending block, in insertion
// order.
func (b *pendingBlock) Transactions() []*types.Transaction {
	transactions := make([]*types.Transaction, len(b.transactionIDs))
	for i, txID := range b.transactionIDs {
		transactions[i] = b.transactions[txID]
	}

	return transactions
}

// TransactionResults returns the results of all executed transactions, in
// execution order.
func (b *pendingBlock) TransactionResults() []*types.TransactionResult {
	results := make([]*types.TransactionResult, 0, len(b.transactionResults))
	for _, txID := range b.transactionIDs {
		if result, ok := b.transactionResults[txID]; ok {
			results = append(results, result)
		}
	}

	return results
}

// LedgerDelta returns the ledger delta for the pending block.
func (b *pendingBlock) LedgerDelta() types.LedgerDelta {
	return b.ledgerView.Delta()
}

// AddTransaction adds a transaction to the pending block.
func (b *pendingBlock) AddTransaction(tx types.Transaction) {
	b.transactionIDs = append(b.transactionIDs, tx.ID())
	b.transactions[tx.ID()] = &tx
}

// ContainsTransaction checks if a transaction is included in the pending block.
func (b *pendingBlock) ContainsTransaction(txID types.Identifier) bool {
	_, exists := b.transactions[txID]
	return exists
}

// GetTransaction retrieves a transaction in the pending block by ID.
func (b *pendingBlock) GetTransaction(txID types.Identifier) *types.Transaction {
	return b.transactions[txID]
}

// nextTransaction returns the next indexed transaction.
func (b *pendingBlock) nextTransaction() *types.Transaction {
	txID := b.transactionIDs[b.index]
	return b.GetTransaction(txID)
}

// ExecuteNextTransaction executes the next transaction in the pending block.
//
// This function uses the provided execute function to perform the actual
// execution, then updates the pending block with the output. The transaction
// executes against a child view: a reverted transaction discards its writes,
// a successful one merges them into the block's working ledger.
func (b *pendingBlock) ExecuteNextTransaction(
	execute func(ledgerView *types.LedgerView, tx *types.Transaction) *types.TransactionResult,
) *types.TransactionResult {
	tx := b.nextTransaction()

	childView := b.ledgerView.NewChild()

	result := execute(childView, tx)

	// increment transaction index even if the transaction reverts
	b.index++

	if result.Succeeded() {
		b.events = append(b.events, result.Events...)
		b.ledgerView.MergeView(childView)
	}

	b.transactionResults[tx.ID()] = result

	return result
}

// Events returns all events captured during the execution of the pending block.
func (b *pendingBlock) Events() []types.Event {
	return b.events
}

// ExecutionStarted returns true if the pending block has started executing.
func (b *pendingBlock) ExecutionStarted() bool {
	return b.index > 0
}

// ExecutionComplete returns true if the pending block is fully executed.
func (b *pendingBlock) ExecutionComplete() bool {
	return b.index >= b.Size()
}

// Size returns the number of transactions in the pending block.
func (b *pendingBlock) Size() int {
	return len(b.transactionIDs)
}

// Empty returns true if the pending block is empty.
func (b *pendingBlock) Empty() bool {
	return b.Size() == 0
}
