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

// Package emulator provides an emulated execution environment for a
// fixed-supply token drop contract that can be used for development purposes.
//
// The emulator applies contract operations as transactions with a single
// global sequential ordering and atomic all-or-nothing effect per invocation,
// the execution model these contracts have on their native networks.
//
// This package can be used as a library or through the drop CLI.
package emulator

import (
	"context"
	"errors"
	"sync"

	"github.com/dropmint/drop-emulator/storage"
	"github.com/dropmint/drop-emulator/storage/memstore"
	"github.com/dropmint/drop-emulator/types"
)

// Emulator emulates the execution environment of a drop contract.
type Emulator struct {
	// committed chain state: blocks, transactions, registers, events
	storage storage.Store

	// mutex protecting pending block
	mu sync.RWMutex

	// pending block containing block info, register state, pending transactions
	pendingBlock *pendingBlock

	// the emulated contract
	contract *DropContract

	// nonce assigned to the next auto-submitted transaction
	nonce uint64
}

// EmulatorAPI defines the method set of an emulated drop contract.
type EmulatorAPI interface {
	AddTransaction(tx types.Transaction) error
	ExecuteNextTransaction() (*types.TransactionResult, error)
	ExecuteBlock() ([]*types.TransactionResult, error)
	CommitBlock() (*types.Block, error)
	ExecuteAndCommitBlock() (*types.Block, []*types.TransactionResult, error)
	MintTokens(caller types.Address, quantity uint64, payment types.Wei) (*types.TransactionResult, error)
	ReserveTokens(caller types.Address) (*types.TransactionResult, error)
	SetBaseTokenURI(caller types.Address, uri string) (*types.TransactionResult, error)
	GetLatestBlock() (*types.Block, error)
	GetBlockByID(id types.Identifier) (*types.Block, error)
	GetBlockByHeight(height uint64) (*types.Block, error)
	GetTransaction(txID types.Identifier) (*types.Transaction, error)
	GetTransactionResult(txID types.Identifier) (*types.StorableTransactionResult, error)
	GetEventsByHeight(blockHeight uint64, eventType string) ([]types.Event, error)
	TotalSupply() (uint64, error)
	OwnerOf(tokenID uint64) (types.Address, error)
	TokenURI(tokenID uint64) (string, error)
	BaseTokenURI() (string, error)
	WalletOfOwner(holder types.Address) ([]uint64, error)
	BalanceOf(holder types.Address) (uint64, error)
}

var _ EmulatorAPI = &Emulator{}

// config is a set of configuration options for an emulator.
type config struct {
	Store    storage.Store
	Contract ContractConfig
}

// defaultConfig is the default configuration for an emulator.
var defaultConfig = config{
	Contract: DefaultContractConfig(),
}

// Option is a function applying a change to the emulator config.
type Option func(*config)

// WithStore sets the persistent storage provider.
func WithStore(store storage.Store) Option {
	return func(c *config) {
		c.Store = store
	}
}

// WithContractConfig sets the parameters of the emulated contract.
func WithContractConfig(contractConfig ContractConfig) Option {
	return func(c *config) {
		c.Contract = contractConfig
	}
}

// NewEmulator instantiates a new emulated drop contract with the provided
// options.
//
// If the storage provider already contains committed state, the emulator
// resumes from the latest block. Otherwise the contract constructor runs and
// its state is committed as the genesis block.
func NewEmulator(opts ...Option) (*Emulator, error) {
	ctx := context.Background()

	// apply options to the default config
	conf := defaultConfig
	for _, opt := range opts {
		opt(&conf)
	}

	// if no store is specified, use a memstore
	// NOTE: we don't initialize this in defaultConfig because otherwise the
	// same memstore is shared between Emulator instances
	if conf.Store == nil {
		conf.Store = memstore.New()
	}
	store := conf.Store

	contract, err := NewDropContract(conf.Contract)
	if err != nil {
		return nil, err
	}

	var pendingBlock *pendingBlock

	latestBlock, err := store.LatestBlock(ctx)
	switch {
	case err == nil:
		// storage contains data, load state from storage
		latestLedgerView, lerr := store.LedgerByHeight(ctx, latestBlock.Height)
		if lerr != nil {
			return nil, &StorageError{lerr}
		}

		pendingBlock = newPendingBlock(latestBlock, latestLedgerView)

	case errors.Is(err, storage.ErrNotFound):
		// storage is empty, run the contract constructor
		genesisView, lerr := store.LedgerByHeight(ctx, 0)
		if lerr != nil {
			return nil, &StorageError{lerr}
		}

		contract.Initialize(genesisView)

		genesis := types.GenesisBlock()

		err = store.CommitBlock(ctx, genesis, nil, nil, genesisView.Delta(), nil)
		if err != nil {
			return nil, &StorageError{err}
		}

		ledgerView, lerr := store.LedgerByHeight(ctx, 0)
		if lerr != nil {
			return nil, &StorageError{lerr}
		}

		pendingBlock = newPendingBlock(genesis, ledgerView)

	default:
		// internal storage error, fail fast
		return nil, &StorageError{err}
	}

	return &Emulator{
		storage:      store,
		pendingBlock: pendingBlock,
		contract:     contract,
		// spread nonce ranges out per block so that restarts over the same
		// store do not replay transaction IDs
		nonce: latestBlock.Height << 20,
	}, nil
}

// Contract returns the emulated contract.
func (b *Emulator) Contract() *DropContract {
	return b.contract
}

// ContractConfig returns the parameters of the emulated contract.
func (b *Emulator) ContractConfig() ContractConfig {
	return b.contract.Config()
}

// PendingBlockID returns the ID of the pending block.
func (b *Emulator) PendingBlockID() types.Identifier {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.pendingBlock.ID()
}

// GetLatestBlock gets the latest sealed block.
func (b *Emulator) GetLatestBlock() (*types.Block, error) {
	block, err := b.storage.LatestBlock(context.Background())
	if err != nil {
		return nil, &StorageError{err}
	}

	return &block, nil
}

// GetBlockByID gets a block by ID.
func (b *Emulator) GetBlockByID(id types.Identifier) (*types.Block, error) {
	block, err := b.storage.BlockByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &BlockNotFoundByIDError{ID: id}
		}
		return nil, &StorageError{err}
	}

	return block, nil
}

// GetBlockByHeight gets a block by height.
func (b *Emulator) GetBlockByHeight(height uint64) (*types.Block, error) {
	block, err := b.storage.BlockByHeight(context.Background(), height)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &BlockNotFoundByHeightError{Height: height}
		}
		return nil, &StorageError{err}
	}

	return block, nil
}

// GetTransaction gets an existing transaction by ID.
//
// The function first looks in the pending block, then the current emulator
// state.
func (b *Emulator) GetTransaction(txID types.Identifier) (*types.Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pendingTx := b.pendingBlock.GetTransaction(txID)
	if pendingTx != nil {
		return pendingTx, nil
	}

	tx, err := b.storage.TransactionByID(context.Background(), txID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &TransactionNotFoundError{ID: txID}
		}
		return nil, &StorageError{err}
	}

	return &tx, nil
}

// GetTransactionResult gets the result of a committed transaction.
func (b *Emulator) GetTransactionResult(txID types.Identifier) (*types.StorableTransactionResult, error) {
	result, err := b.storage.TransactionResultByID(context.Background(), txID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &TransactionNotFoundError{ID: txID}
		}
		return nil, &StorageError{err}
	}

	return &result, nil
}

// GetEventsByHeight returns the events in the block at the given height,
// optionally filtered by type.
func (b *Emulator) GetEventsByHeight(blockHeight uint64, eventType string) ([]types.Event, error) {
	events, err := b.storage.EventsByHeight(context.Background(), blockHeight, eventType)
	if err != nil {
		return nil, &StorageError{err}
	}

	return events, nil
}

// AddTransaction validates a transaction and adds it to the current pending
// block.
func (b *Emulator) AddTransaction(tx types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addTransaction(tx)
}

func (b *Emulator) addTransaction(tx types.Transaction) error {
	txID := tx.ID()

	// if the transaction is already in the pending block, reject it
	if b.pendingBlock.ContainsTransaction(txID) {
		return &DuplicateTransactionError{TxID: txID}
	}

	// if the transaction has already been committed, reject it
	_, err := b.storage.TransactionByID(context.Background(), txID)
	if err == nil {
		return &DuplicateTransactionError{TxID: txID}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return &StorageError{err}
	}

	missingFields := make([]string, 0)

	switch tx.Kind {
	case types.TransactionMint, types.TransactionReserve, types.TransactionSetBaseURI:
	default:
		missingFields = append(missingFields, "kind")
	}

	if tx.Caller.IsEmpty() {
		missingFields = append(missingFields, "caller")
	}

	if len(missingFields) > 0 {
		return &InvalidTransactionError{TxID: txID, MissingFields: missingFields}
	}

	b.pendingBlock.AddTransaction(tx)

	return nil
}

// ExecuteBlock executes the remaining transactions in pending block.
func (b *Emulator) ExecuteBlock() ([]*types.TransactionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.executeBlock()
}

func (b *Emulator) executeBlock() ([]*types.TransactionResult, error) {
	results := make([]*types.TransactionResult, 0)

	// empty blocks do not require execution, treat as a no-op
	if b.pendingBlock.Empty() {
		return results, nil
	}

	// continue executing transactions until execution is complete
	for !b.pendingBlock.ExecutionComplete() {
		result := b.executeNextTransaction()
		results = append(results, result)
	}

	return results, nil
}

// ExecuteNextTransaction executes the next indexed transaction in the pending
// block.
func (b *Emulator) ExecuteNextTransaction() (*types.TransactionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pendingBlock.ExecutionComplete() {
		return nil, &PendingBlockTransactionsExhaustedError{
			BlockID: b.pendingBlock.ID(),
		}
	}

	return b.executeNextTransaction(), nil
}

func (b *Emulator) executeNextTransaction() *types.TransactionResult {
	return b.pendingBlock.ExecuteNextTransaction(
		func(ledgerView *types.LedgerView, tx *types.Transaction) *types.TransactionResult {
			return b.executeTransaction(ledgerView, tx)
		},
	)
}

// executeTransaction runs a single contract operation against the provided
// ledger view. The caller decides whether the view's writes survive.
func (b *Emulator) executeTransaction(ledgerView *types.LedgerView, tx *types.Transaction) *types.TransactionResult {
	var (
		events   []types.Event
		tokenIDs []uint64
		err      error
	)

	switch tx.Kind {
	case types.TransactionMint:
		events, tokenIDs, err = b.contract.Mint(ledgerView, tx.Caller, tx.Quantity, tx.Payment)
	case types.TransactionReserve:
		events, tokenIDs, err = b.contract.Reserve(ledgerView, tx.Caller)
	case types.TransactionSetBaseURI:
		events, err = b.contract.SetBaseURI(ledgerView, tx.Caller, tx.URI)
	default:
		err = &InvalidTransactionError{TxID: tx.ID(), MissingFields: []string{"kind"}}
	}

	txID := tx.ID()
	for i := range events {
		events[i].TransactionID = txID
	}

	return &types.TransactionResult{
		TransactionID: txID,
		Error:         err,
		Events:        events,
		TokenIDs:      tokenIDs,
	}
}

// CommitBlock seals the current pending block and saves it to storage.
//
// This function clears the pending transaction pool and resets the pending
// block. Committing a block that has not finished executing is an error.
func (b *Emulator) CommitBlock() (*types.Block, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.commitBlock()
}

func (b *Emulator) commitBlock() (*types.Block, error) {
	// pending block cannot be committed before execution starts (unless empty)
	if !b.pendingBlock.ExecutionStarted() && !b.pendingBlock.Empty() {
		return nil, &PendingBlockCommitBeforeExecutionError{BlockID: b.pendingBlock.ID()}
	}

	// pending block cannot be committed before execution completes
	if b.pendingBlock.ExecutionStarted() && !b.pendingBlock.ExecutionComplete() {
		return nil, &PendingBlockMidExecutionError{BlockID: b.pendingBlock.ID()}
	}

	block := b.pendingBlock.Block()
	delta := b.pendingBlock.LedgerDelta()
	transactions := b.pendingBlock.Transactions()
	events := b.pendingBlock.Events()

	results := b.pendingBlock.TransactionResults()
	storableResults := make([]*types.StorableTransactionResult, len(results))
	for i, result := range results {
		storable := result.Storable(block.Height)
		storableResults[i] = &storable
	}

	// commit the pending block to storage
	err := b.storage.CommitBlock(context.Background(), block, transactions, storableResults, delta, events)
	if err != nil {
		return nil, &StorageError{err}
	}

	ledgerView, err := b.storage.LedgerByHeight(context.Background(), block.Height)
	if err != nil {
		return nil, &StorageError{err}
	}

	// reset pending block using the new committed state
	b.pendingBlock = newPendingBlock(block, ledgerView)

	return &block, nil
}

// ExecuteAndCommitBlock executes the remaining transactions in the pending
// block and commits it.
func (b *Emulator) ExecuteAndCommitBlock() (*types.Block, []*types.TransactionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.executeAndCommitBlock()
}

func (b *Emulator) executeAndCommitBlock() (*types.Block, []*types.TransactionResult, error) {
	results, err := b.executeBlock()
	if err != nil {
		return nil, nil, err
	}

	block, err := b.commitBlock()
	if err != nil {
		return nil, results, err
	}

	return block, results, nil
}

// ResetPendingBlock clears the pending state, reloading the latest committed
// ledger.
func (b *Emulator) ResetPendingBlock() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	latestBlock, err := b.storage.LatestBlock(context.Background())
	if err != nil {
		return &StorageError{err}
	}

	ledgerView, err := b.storage.LedgerByHeight(context.Background(), latestBlock.Height)
	if err != nil {
		return &StorageError{err}
	}

	b.pendingBlock = newPendingBlock(latestBlock, ledgerView)

	return nil
}

// MintTokens submits, executes and commits a minting transaction from the
// given caller. The returned result carries the assigned token IDs, or the
// revert reason.
func (b *Emulator) MintTokens(caller types.Address, quantity uint64, payment types.Wei) (*types.TransactionResult, error) {
	return b.submit(types.Transaction{
		Kind:     types.TransactionMint,
		Caller:   caller,
		Quantity: quantity,
		Payment:  payment,
	})
}

// ReserveTokens submits, executes and commits an owner reservation.
func (b *Emulator) ReserveTokens(caller types.Address) (*types.TransactionResult, error) {
	return b.submit(types.Transaction{
		Kind:   types.TransactionReserve,
		Caller: caller,
	})
}

// SetBaseTokenURI submits, executes and commits a base locator update.
func (b *Emulator) SetBaseTokenURI(caller types.Address, uri string) (*types.TransactionResult, error) {
	return b.submit(types.Transaction{
		Kind:   types.TransactionSetBaseURI,
		Caller: caller,
		URI:    uri,
	})
}

// submit runs a transaction through the full pipeline: pending block, execution,
// block commit. Each submitted transaction seals its own block.
func (b *Emulator) submit(tx types.Transaction) (*types.TransactionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nonce++
	tx.Nonce = b.nonce

	err := b.addTransaction(tx)
	if err != nil {
		return nil, err
	}

	_, results, err := b.executeAndCommitBlock()
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.TransactionID == tx.ID() {
			return result, nil
		}
	}

	// unreachable as long as the pipeline executes every pending transaction
	return nil, &TransactionNotFoundError{ID: tx.ID()}
}

// latestLedger returns a read-only view into the latest committed ledger.
func (b *Emulator) latestLedger() (*types.LedgerView, error) {
	ctx := context.Background()

	latestBlock, err := b.storage.LatestBlock(ctx)
	if err != nil {
		return nil, &StorageError{err}
	}

	view, err := b.storage.LedgerByHeight(ctx, latestBlock.Height)
	if err != nil {
		return nil, &StorageError{err}
	}

	return view, nil
}

// TotalSupply returns the number of tokens issued so far.
func (b *Emulator) TotalSupply() (uint64, error) {
	view, err := b.latestLedger()
	if err != nil {
		return 0, err
	}

	return b.contract.TotalSupply(view)
}

// OwnerOf returns the holder of a token.
func (b *Emulator) OwnerOf(tokenID uint64) (types.Address, error) {
	view, err := b.latestLedger()
	if err != nil {
		return types.EmptyAddress, err
	}

	return b.contract.OwnerOf(view, tokenID)
}

// TokenURI resolves the metadata locator of a token against the current base
// locator.
func (b *Emulator) TokenURI(tokenID uint64) (string, error) {
	view, err := b.latestLedger()
	if err != nil {
		return "", err
	}

	return b.contract.TokenURI(view, tokenID)
}

// BaseTokenURI returns the current base locator.
func (b *Emulator) BaseTokenURI() (string, error) {
	view, err := b.latestLedger()
	if err != nil {
		return "", err
	}

	return b.contract.BaseURI(view)
}

// WalletOfOwner lists the token IDs held by an identity, in ascending order.
func (b *Emulator) WalletOfOwner(holder types.Address) ([]uint64, error) {
	view, err := b.latestLedger()
	if err != nil {
		return nil, err
	}

	return b.contract.WalletOfOwner(view, holder)
}

// BalanceOf counts the tokens held by an identity.
func (b *Emulator) BalanceOf(holder types.Address) (uint64, error) {
	view, err := b.latestLedger()
	if err != nil {
		return 0, err
	}

	return b.contract.BalanceOf(view, holder)
}
