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

package emulator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emulator "github.com/dropmint/drop-emulator"
	"github.com/dropmint/drop-emulator/storage/memstore"
	"github.com/dropmint/drop-emulator/types"
)

var (
	owner  = types.HexToAddress("0x01")
	alice  = types.HexToAddress("0xa1")
	bob    = types.HexToAddress("0xb2")
	nobody = types.HexToAddress("0xff")
)

// testContractConfig returns a small collection so that capacity edge cases
// are cheap to reach.
func testContractConfig() emulator.ContractConfig {
	return emulator.ContractConfig{
		Name:              "Pixel Penguins",
		Symbol:            "PPNG",
		Owner:             owner,
		MaxSupply:         10,
		UnitPrice:         types.Wei(1000),
		MaxPerTransaction: 5,
		ReserveBatchSize:  3,
		BaseURI:           "ipfs://QmTest/",
	}
}

func newTestEmulator(t *testing.T) *emulator.Emulator {
	emu, err := emulator.NewEmulator(
		emulator.WithContractConfig(testContractConfig()),
	)
	require.NoError(t, err)

	return emu
}

func TestNewEmulator(t *testing.T) {

	t.Parallel()

	t.Run("commits a genesis block", func(t *testing.T) {
		emu := newTestEmulator(t)

		block, err := emu.GetLatestBlock()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block.Height)
		assert.Empty(t, block.TransactionIDs)
	})

	t.Run("constructor state is visible", func(t *testing.T) {
		emu := newTestEmulator(t)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), supply)

		baseURI, err := emu.BaseTokenURI()
		require.NoError(t, err)
		assert.Equal(t, "ipfs://QmTest/", baseURI)
	})

	t.Run("rejects invalid contract parameters", func(t *testing.T) {
		conf := testContractConfig()
		conf.MaxSupply = 0

		_, err := emulator.NewEmulator(emulator.WithContractConfig(conf))
		assert.Error(t, err)
	})

	t.Run("uses default contract parameters", func(t *testing.T) {
		emu, err := emulator.NewEmulator()
		require.NoError(t, err)

		conf := emu.ContractConfig()
		assert.Equal(t, emulator.DefaultContractConfig(), conf)
		assert.Equal(t, uint64(10000), conf.MaxSupply)
	})
}

func TestMintTokens(t *testing.T) {

	t.Parallel()

	t.Run("assigns sequential IDs from one", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 3, types.Wei(3000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		assert.Equal(t, []uint64{1, 2, 3}, result.TokenIDs)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), supply)

		for _, tokenID := range result.TokenIDs {
			holder, err := emu.OwnerOf(tokenID)
			require.NoError(t, err)
			assert.Equal(t, alice, holder)
		}
	})

	t.Run("continues numbering across mints", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 2, types.Wei(2000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		result, err = emu.MintTokens(bob, 2, types.Wei(2000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())
		assert.Equal(t, []uint64{3, 4}, result.TokenIDs)
	})

	t.Run("emits a transfer event per token", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 2, types.Wei(2000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		require.Len(t, result.Events, 2)

		for i, event := range result.Events {
			assert.Equal(t, types.EventTransfer, event.Type)
			assert.Equal(t, result.TransactionID, event.TransactionID)
			assert.Equal(t, uint32(i), event.Index)
			assert.Equal(t, uint64(i+1), event.TokenID)
			assert.Equal(t, types.EmptyAddress, event.From)
			assert.Equal(t, alice, event.To)
		}
	})

	t.Run("accepts overpayment", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 1, types.Wei(99999))
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
	})

	t.Run("reverts on zero quantity", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 0, types.Wei(0))
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.InvalidQuantityError{}, result.Error)
		assert.True(t, emulator.IsRevertError(result.Error))
	})

	t.Run("reverts above the per-transaction limit", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 6, types.Wei(6000))
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.MintLimitExceededError{}, result.Error)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), supply)
	})

	t.Run("reverts on underpayment without partial effect", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 3, types.Wei(2999))
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.InsufficientPaymentError{}, result.Error)
		assert.Empty(t, result.TokenIDs)
		assert.Empty(t, result.Events)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), supply)

		_, err = emu.OwnerOf(1)
		assert.IsType(t, &emulator.TokenNotFoundError{}, err)
	})

	t.Run("reverts when the required payment overflows", func(t *testing.T) {
		conf := testContractConfig()
		unitPrice, err := types.ParseEther("10")
		require.NoError(t, err)
		conf.UnitPrice = unitPrice

		emu, err := emulator.NewEmulator(emulator.WithContractConfig(conf))
		require.NoError(t, err)

		// 2 x 10 ETH exceeds the wei range; a 2 ETH payment must not
		// cover it through a wrapped product
		payment, err := types.ParseEther("2")
		require.NoError(t, err)

		result, err := emu.MintTokens(alice, 2, payment)
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.InsufficientPaymentError{}, result.Error)
		assert.Empty(t, result.TokenIDs)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), supply)
	})

	t.Run("reverts when the request exceeds remaining capacity", func(t *testing.T) {
		emu := newTestEmulator(t)

		// fill 8 of 10
		for i := 0; i < 2; i++ {
			result, err := emu.MintTokens(alice, 4, types.Wei(4000))
			require.NoError(t, err)
			require.True(t, result.Succeeded())
		}

		// 3 requested, 2 remaining: fails entirely
		result, err := emu.MintTokens(bob, 3, types.Wei(3000))
		require.NoError(t, err)
		require.True(t, result.Reverted())

		soldOut, ok := result.Error.(*emulator.SoldOutError)
		require.True(t, ok)
		assert.Equal(t, uint64(3), soldOut.Requested)
		assert.Equal(t, uint64(2), soldOut.Remaining)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(8), supply)

		// a request that fits the remainder still succeeds
		result, err = emu.MintTokens(bob, 2, types.Wei(2000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())
		assert.Equal(t, []uint64{9, 10}, result.TokenIDs)
	})

	t.Run("supply never exceeds capacity", func(t *testing.T) {
		emu := newTestEmulator(t)

		for i := 0; i < 2; i++ {
			result, err := emu.MintTokens(alice, 5, types.Wei(5000))
			require.NoError(t, err)
			require.True(t, result.Succeeded())
		}

		result, err := emu.MintTokens(alice, 1, types.Wei(1000))
		require.NoError(t, err)
		require.True(t, result.Reverted())
		assert.IsType(t, &emulator.SoldOutError{}, result.Error)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(10), supply)
	})
}

func TestReserveTokens(t *testing.T) {

	t.Parallel()

	t.Run("mints the reserve batch to the owner", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.ReserveTokens(owner)
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		assert.Equal(t, []uint64{1, 2, 3}, result.TokenIDs)

		balance, err := emu.BalanceOf(owner)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), balance)
	})

	t.Run("requires no payment", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.ReserveTokens(owner)
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
	})

	t.Run("reverts for non-owner callers", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.ReserveTokens(alice)
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.NotOwnerError{}, result.Error)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), supply)
	})

	t.Run("reverts when the batch exceeds remaining capacity", func(t *testing.T) {
		emu := newTestEmulator(t)

		for i := 0; i < 2; i++ {
			result, err := emu.MintTokens(alice, 4, types.Wei(4000))
			require.NoError(t, err)
			require.True(t, result.Succeeded())
		}

		result, err := emu.ReserveTokens(owner)
		require.NoError(t, err)
		require.True(t, result.Reverted())
		assert.IsType(t, &emulator.SoldOutError{}, result.Error)
	})
}

func TestSetBaseTokenURI(t *testing.T) {

	t.Parallel()

	t.Run("takes effect for all tokens at once", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.MintTokens(alice, 2, types.Wei(2000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		uri, err := emu.TokenURI(1)
		require.NoError(t, err)
		assert.Equal(t, "ipfs://QmTest/1", uri)

		result, err = emu.SetBaseTokenURI(owner, "ipfs://QmRevealed/")
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		for tokenID, want := range map[uint64]string{
			1: "ipfs://QmRevealed/1",
			2: "ipfs://QmRevealed/2",
		} {
			uri, err := emu.TokenURI(tokenID)
			require.NoError(t, err)
			assert.Equal(t, want, uri)
		}
	})

	t.Run("emits a change event", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.SetBaseTokenURI(owner, "ipfs://QmRevealed/")
		require.NoError(t, err)
		require.True(t, result.Succeeded())

		require.Len(t, result.Events, 1)
		assert.Equal(t, types.EventBaseURIChanged, result.Events[0].Type)
		assert.Equal(t, "ipfs://QmRevealed/", result.Events[0].URI)
	})

	t.Run("reverts for non-owner callers", func(t *testing.T) {
		emu := newTestEmulator(t)

		result, err := emu.SetBaseTokenURI(alice, "ipfs://QmEvil/")
		require.NoError(t, err)
		require.True(t, result.Reverted())

		assert.IsType(t, &emulator.NotOwnerError{}, result.Error)

		baseURI, err := emu.BaseTokenURI()
		require.NoError(t, err)
		assert.Equal(t, "ipfs://QmTest/", baseURI)
	})
}

func TestTokenURI(t *testing.T) {

	t.Parallel()

	emu := newTestEmulator(t)

	result, err := emu.MintTokens(alice, 1, types.Wei(1000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	t.Run("is deterministic in base and ID", func(t *testing.T) {
		first, err := emu.TokenURI(1)
		require.NoError(t, err)

		second, err := emu.TokenURI(1)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "ipfs://QmTest/1", first)
	})

	t.Run("fails for unminted IDs", func(t *testing.T) {
		_, err := emu.TokenURI(2)
		assert.IsType(t, &emulator.TokenNotFoundError{}, err)

		_, err = emu.TokenURI(0)
		assert.IsType(t, &emulator.TokenNotFoundError{}, err)
	})
}

func TestWalletOfOwner(t *testing.T) {

	t.Parallel()

	emu := newTestEmulator(t)

	result, err := emu.MintTokens(alice, 2, types.Wei(2000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	result, err = emu.MintTokens(bob, 1, types.Wei(1000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	result, err = emu.MintTokens(alice, 1, types.Wei(1000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	t.Run("lists held IDs in ascending order", func(t *testing.T) {
		tokenIDs, err := emu.WalletOfOwner(alice)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2, 4}, tokenIDs)

		tokenIDs, err = emu.WalletOfOwner(bob)
		require.NoError(t, err)
		assert.Equal(t, []uint64{3}, tokenIDs)
	})

	t.Run("is empty for unknown holders", func(t *testing.T) {
		tokenIDs, err := emu.WalletOfOwner(nobody)
		require.NoError(t, err)
		assert.Empty(t, tokenIDs)

		balance, err := emu.BalanceOf(nobody)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)
	})
}

func TestBlocks(t *testing.T) {

	t.Parallel()

	emu := newTestEmulator(t)

	result, err := emu.MintTokens(alice, 1, types.Wei(1000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	t.Run("each submission seals a block", func(t *testing.T) {
		block, err := emu.GetLatestBlock()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), block.Height)
		assert.Len(t, block.TransactionIDs, 1)
		assert.Equal(t, result.TransactionID, block.TransactionIDs[0])
	})

	t.Run("blocks chain by parent ID", func(t *testing.T) {
		genesis, err := emu.GetBlockByHeight(0)
		require.NoError(t, err)

		block, err := emu.GetBlockByHeight(1)
		require.NoError(t, err)
		assert.Equal(t, genesis.ID(), block.ParentID)
	})

	t.Run("blocks are retrievable by ID", func(t *testing.T) {
		latest, err := emu.GetLatestBlock()
		require.NoError(t, err)

		block, err := emu.GetBlockByID(latest.ID())
		require.NoError(t, err)
		assert.Equal(t, latest.Height, block.Height)
	})

	t.Run("missing blocks return typed errors", func(t *testing.T) {
		_, err := emu.GetBlockByHeight(99)
		assert.IsType(t, &emulator.BlockNotFoundByHeightError{}, err)

		_, err = emu.GetBlockByID(types.HashToIdentifier([]byte("missing")))
		assert.IsType(t, &emulator.BlockNotFoundByIDError{}, err)
	})
}

func TestTransactions(t *testing.T) {

	t.Parallel()

	emu := newTestEmulator(t)

	result, err := emu.MintTokens(alice, 1, types.Wei(1000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	t.Run("committed transactions are retrievable", func(t *testing.T) {
		tx, err := emu.GetTransaction(result.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, types.TransactionMint, tx.Kind)
		assert.Equal(t, alice, tx.Caller)
	})

	t.Run("results are stored with revert reasons", func(t *testing.T) {
		reverted, err := emu.MintTokens(alice, 0, types.Wei(0))
		require.NoError(t, err)
		require.True(t, reverted.Reverted())

		stored, err := emu.GetTransactionResult(reverted.TransactionID)
		require.NoError(t, err)
		assert.True(t, stored.Reverted())
		assert.Error(t, stored.Err())
	})

	t.Run("missing transactions return typed errors", func(t *testing.T) {
		_, err := emu.GetTransaction(types.HashToIdentifier([]byte("missing")))
		assert.IsType(t, &emulator.TransactionNotFoundError{}, err)

		_, err = emu.GetTransactionResult(types.HashToIdentifier([]byte("missing")))
		assert.IsType(t, &emulator.TransactionNotFoundError{}, err)
	})
}

func TestEvents(t *testing.T) {

	t.Parallel()

	emu := newTestEmulator(t)

	result, err := emu.MintTokens(alice, 2, types.Wei(2000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	t.Run("sealed events are indexed by height", func(t *testing.T) {
		events, err := emu.GetEventsByHeight(1, "")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("events filter by type", func(t *testing.T) {
		events, err := emu.GetEventsByHeight(1, types.EventTransfer)
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = emu.GetEventsByHeight(1, types.EventBaseURIChanged)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestAddTransaction(t *testing.T) {

	t.Parallel()

	t.Run("rejects duplicates in the pending block", func(t *testing.T) {
		emu := newTestEmulator(t)

		tx := types.Transaction{
			Kind:     types.TransactionMint,
			Caller:   alice,
			Quantity: 1,
			Payment:  types.Wei(1000),
			Nonce:    1,
		}

		err := emu.AddTransaction(tx)
		require.NoError(t, err)

		err = emu.AddTransaction(tx)
		assert.IsType(t, &emulator.DuplicateTransactionError{}, err)
	})

	t.Run("rejects committed duplicates", func(t *testing.T) {
		emu := newTestEmulator(t)

		tx := types.Transaction{
			Kind:     types.TransactionMint,
			Caller:   alice,
			Quantity: 1,
			Payment:  types.Wei(1000),
			Nonce:    1,
		}

		err := emu.AddTransaction(tx)
		require.NoError(t, err)

		_, _, err = emu.ExecuteAndCommitBlock()
		require.NoError(t, err)

		err = emu.AddTransaction(tx)
		assert.IsType(t, &emulator.DuplicateTransactionError{}, err)
	})

	t.Run("rejects malformed transactions", func(t *testing.T) {
		emu := newTestEmulator(t)

		err := emu.AddTransaction(types.Transaction{})

		var invalid *emulator.InvalidTransactionError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.MissingFields, "kind")
		assert.Contains(t, invalid.MissingFields, "caller")
	})
}

func TestPendingBlock(t *testing.T) {

	t.Parallel()

	pendingTx := func(nonce uint64) types.Transaction {
		return types.Transaction{
			Kind:     types.TransactionMint,
			Caller:   alice,
			Quantity: 1,
			Payment:  types.Wei(1000),
			Nonce:    nonce,
		}
	}

	t.Run("commit of an empty pending block is a no-op", func(t *testing.T) {
		emu := newTestEmulator(t)

		block, err := emu.CommitBlock()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), block.Height)
		assert.Empty(t, block.TransactionIDs)
	})

	t.Run("cannot commit before execution", func(t *testing.T) {
		emu := newTestEmulator(t)

		err := emu.AddTransaction(pendingTx(1))
		require.NoError(t, err)

		_, err = emu.CommitBlock()
		assert.IsType(t, &emulator.PendingBlockCommitBeforeExecutionError{}, err)
	})

	t.Run("cannot commit mid-execution", func(t *testing.T) {
		emu := newTestEmulator(t)

		require.NoError(t, emu.AddTransaction(pendingTx(1)))
		require.NoError(t, emu.AddTransaction(pendingTx(2)))

		_, err := emu.ExecuteNextTransaction()
		require.NoError(t, err)

		_, err = emu.CommitBlock()
		assert.IsType(t, &emulator.PendingBlockMidExecutionError{}, err)
	})

	t.Run("cannot execute past the last transaction", func(t *testing.T) {
		emu := newTestEmulator(t)

		require.NoError(t, emu.AddTransaction(pendingTx(1)))

		_, err := emu.ExecuteNextTransaction()
		require.NoError(t, err)

		_, err = emu.ExecuteNextTransaction()
		assert.IsType(t, &emulator.PendingBlockTransactionsExhaustedError{}, err)
	})

	t.Run("a reverted transaction does not poison its block", func(t *testing.T) {
		emu := newTestEmulator(t)

		require.NoError(t, emu.AddTransaction(pendingTx(1)))
		require.NoError(t, emu.AddTransaction(types.Transaction{
			Kind:   types.TransactionSetBaseURI,
			Caller: alice, // not the owner
			URI:    "ipfs://QmEvil/",
			Nonce:  2,
		}))
		require.NoError(t, emu.AddTransaction(pendingTx(3)))

		block, results, err := emu.ExecuteAndCommitBlock()
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.True(t, results[0].Succeeded())
		assert.True(t, results[1].Reverted())
		assert.True(t, results[2].Succeeded())
		assert.Len(t, block.TransactionIDs, 3)

		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), supply)

		baseURI, err := emu.BaseTokenURI()
		require.NoError(t, err)
		assert.Equal(t, "ipfs://QmTest/", baseURI)
	})

	t.Run("reset clears pending transactions", func(t *testing.T) {
		emu := newTestEmulator(t)

		require.NoError(t, emu.AddTransaction(pendingTx(1)))
		require.NoError(t, emu.ResetPendingBlock())

		block, err := emu.CommitBlock()
		require.NoError(t, err)
		assert.Empty(t, block.TransactionIDs)
	})
}

func TestPersistence(t *testing.T) {

	t.Parallel()

	store := memstore.New()

	emu, err := emulator.NewEmulator(
		emulator.WithStore(store),
		emulator.WithContractConfig(testContractConfig()),
	)
	require.NoError(t, err)

	result, err := emu.MintTokens(alice, 3, types.Wei(3000))
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	result, err = emu.SetBaseTokenURI(owner, "ipfs://QmRevealed/")
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	// restart over the same store
	emu, err = emulator.NewEmulator(
		emulator.WithStore(store),
		emulator.WithContractConfig(testContractConfig()),
	)
	require.NoError(t, err)

	t.Run("resumes from the latest block", func(t *testing.T) {
		block, err := emu.GetLatestBlock()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), block.Height)
	})

	t.Run("contract state survives a restart", func(t *testing.T) {
		supply, err := emu.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), supply)

		baseURI, err := emu.BaseTokenURI()
		require.NoError(t, err)
		assert.Equal(t, "ipfs://QmRevealed/", baseURI)

		holder, err := emu.OwnerOf(2)
		require.NoError(t, err)
		assert.Equal(t, alice, holder)
	})

	t.Run("minting continues after a restart", func(t *testing.T) {
		result, err := emu.MintTokens(bob, 1, types.Wei(1000))
		require.NoError(t, err)
		require.True(t, result.Succeeded())
		assert.Equal(t, []uint64{4}, result.TokenIDs)
	})
}
