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

package types

import (
	"fmt"
	"time"
)

// A Block is a sealed batch of executed transactions together with the
// resulting ledger state.
type Block struct {
	// Height is the position of the block in the chain. Genesis is height 0.
	Height uint64
	// ParentID is the ID of the previous block.
	ParentID Identifier
	// Timestamp records when the block was sealed.
	Timestamp time.Time
	// TransactionIDs lists the transactions included in this block, in
	// execution order.
	TransactionIDs []Identifier
}

// blockIDEncoding mirrors Block for canonical hashing.
type blockIDEncoding struct {
	Height         uint64
	ParentID       []byte
	TransactionIDs [][]byte
}

// ID returns the content hash of the block header.
func (b Block) ID() Identifier {
	txIDs := make([][]byte, len(b.TransactionIDs))
	for i, txID := range b.TransactionIDs {
		txIDs[i] = txID.Bytes()
	}

	enc, err := canonicalEncMode.Marshal(blockIDEncoding{
		Height:         b.Height,
		ParentID:       b.ParentID.Bytes(),
		TransactionIDs: txIDs,
	})
	if err != nil {
		panic(fmt.Sprintf("could not encode block for hashing: %s", err))
	}

	return HashToIdentifier(enc)
}

func (b Block) String() string {
	return fmt.Sprintf("block %d (%s)", b.Height, b.ID())
}

// GenesisBlock returns the block at height 0.
func GenesisBlock() Block {
	return Block{
		Height:   0,
		ParentID: EmptyIdentifier,
	}
}
