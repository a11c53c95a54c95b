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

package badger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropmint/drop-emulator/storage"
	"github.com/dropmint/drop-emulator/storage/badger"
	"github.com/dropmint/drop-emulator/types"
)

func setupStore(t *testing.T) *badger.Store {
	store, err := badger.New(badger.WithPath(t.TempDir()), badger.WithTruncate(true))
	require.NoError(t, err)

	return store
}

func identifier(seed string) types.Identifier {
	return types.HashToIdentifier([]byte(seed))
}

func TestBadgerBlocks(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	ctx := context.Background()

	block1 := types.Block{Height: 1, ParentID: identifier("genesis")}
	block2 := types.Block{Height: 2, ParentID: block1.ID()}

	t.Run("returns ErrNotFound before any commit", func(t *testing.T) {
		_, err := store.BlockByID(ctx, block1.ID())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.BlockByHeight(ctx, block1.Height)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.LatestBlock(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	require.NoError(t, store.CommitBlock(ctx, block1, nil, nil, nil, nil))

	t.Run("committed blocks are retrievable", func(t *testing.T) {
		block, err := store.BlockByHeight(ctx, block1.Height)
		require.NoError(t, err)
		assert.Equal(t, block1.ID(), block.ID())

		block, err = store.BlockByID(ctx, block1.ID())
		require.NoError(t, err)
		assert.Equal(t, block1.Height, block.Height)

		latest, err := store.LatestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, block1.ID(), latest.ID())
	})

	require.NoError(t, store.CommitBlock(ctx, block2, nil, nil, nil, nil))

	t.Run("the latest block advances", func(t *testing.T) {
		latest, err := store.LatestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, block2.ID(), latest.ID())
	})
}

func TestBadgerTransactions(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	ctx := context.Background()

	tx := types.Transaction{
		Kind:     types.TransactionMint,
		Caller:   types.HexToAddress("0xa1"),
		Quantity: 2,
		Payment:  types.Wei(2000),
		Nonce:    1,
	}

	result := types.StorableTransactionResult{
		TransactionID: tx.ID(),
		BlockHeight:   1,
	}

	block := types.Block{
		Height:         1,
		TransactionIDs: []types.Identifier{tx.ID()},
	}

	t.Run("returns ErrNotFound for missing transactions", func(t *testing.T) {
		_, err := store.TransactionByID(ctx, tx.ID())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.TransactionResultByID(ctx, tx.ID())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	err := store.CommitBlock(
		ctx,
		block,
		[]*types.Transaction{&tx},
		[]*types.StorableTransactionResult{&result},
		nil,
		nil,
	)
	require.NoError(t, err)

	t.Run("transactions round-trip", func(t *testing.T) {
		stored, err := store.TransactionByID(ctx, tx.ID())
		require.NoError(t, err)
		assert.Equal(t, tx, stored)
	})

	t.Run("results round-trip", func(t *testing.T) {
		stored, err := store.TransactionResultByID(ctx, tx.ID())
		require.NoError(t, err)
		assert.Equal(t, result, stored)
	})
}

func TestBadgerLedger(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	ctx := context.Background()

	// height 1 writes two registers, height 2 overwrites one of them
	delta1 := types.LedgerDelta{
		"supply":   []byte{1},
		"base_uri": []byte("ipfs://QmTest/"),
	}
	delta2 := types.LedgerDelta{
		"supply": []byte{2},
	}

	require.NoError(t, store.CommitBlock(ctx, types.Block{Height: 1}, nil, nil, delta1, nil))
	require.NoError(t, store.CommitBlock(ctx, types.Block{Height: 2}, nil, nil, delta2, nil))

	t.Run("reads the register version at the requested height", func(t *testing.T) {
		view, err := store.LedgerByHeight(ctx, 1)
		require.NoError(t, err)

		value, err := view.Get("supply")
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, value)

		view, err = store.LedgerByHeight(ctx, 2)
		require.NoError(t, err)

		value, err = view.Get("supply")
		require.NoError(t, err)
		assert.Equal(t, []byte{2}, value)
	})

	t.Run("untouched registers carry forward", func(t *testing.T) {
		view, err := store.LedgerByHeight(ctx, 2)
		require.NoError(t, err)

		value, err := view.Get("base_uri")
		require.NoError(t, err)
		assert.Equal(t, []byte("ipfs://QmTest/"), value)
	})

	t.Run("unknown registers yield nil", func(t *testing.T) {
		view, err := store.LedgerByHeight(ctx, 2)
		require.NoError(t, err)

		value, err := view.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, value)
	})
}

func TestBadgerEvents(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	ctx := context.Background()

	events := []types.Event{
		{Type: types.EventTransfer, TokenID: 1, To: types.HexToAddress("0xa1")},
		{Type: types.EventBaseURIChanged, URI: "ipfs://QmRevealed/"},
	}

	require.NoError(t, store.CommitBlock(ctx, types.Block{Height: 1}, nil, nil, nil, events))

	t.Run("events are indexed by height", func(t *testing.T) {
		stored, err := store.EventsByHeight(ctx, 1, "")
		require.NoError(t, err)
		assert.Equal(t, events, stored)
	})

	t.Run("events filter by type", func(t *testing.T) {
		stored, err := store.EventsByHeight(ctx, 1, types.EventTransfer)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, uint64(1), stored[0].TokenID)
	})

	t.Run("heights without events are empty", func(t *testing.T) {
		stored, err := store.EventsByHeight(ctx, 5, "")
		require.NoError(t, err)
		assert.Empty(t, stored)
	})
}

func TestBadgerPersistence(t *testing.T) {

	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	block := types.Block{Height: 1}
	delta := types.LedgerDelta{"supply": []byte{7}}

	store, err := badger.New(badger.WithPath(dir), badger.WithTruncate(true))
	require.NoError(t, err)

	require.NoError(t, store.CommitBlock(ctx, block, nil, nil, delta, nil))
	require.NoError(t, store.Close())

	// reopen the same directory
	store, err = badger.New(badger.WithPath(dir), badger.WithTruncate(true))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	latest, err := store.LatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, block.ID(), latest.ID())

	view, err := store.LedgerByHeight(ctx, 1)
	require.NoError(t, err)

	value, err := view.Get("supply")
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, value)
}

func TestBadgerValueLogGC(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// a GC run with nothing to reclaim is not an error
	assert.NoError(t, store.RunValueLogGC(0.5))
}

func TestBadgerSnapshotDisabled(t *testing.T) {

	t.Parallel()

	store := setupStore(t)
	defer func() {
		require.NoError(t, store.Close())
	}()

	err := store.JumpToContext("prelaunch")
	assert.Error(t, err)
}
