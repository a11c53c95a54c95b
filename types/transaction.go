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

	"github.com/fxamacker/cbor/v2"
)

// TransactionKind selects which contract operation a transaction invokes.
type TransactionKind string

const (
	// TransactionMint invokes the public minting operation.
	TransactionMint TransactionKind = "mint"
	// TransactionReserve invokes the owner-only batch reservation.
	TransactionReserve TransactionKind = "reserve"
	// TransactionSetBaseURI invokes the owner-only base locator update.
	TransactionSetBaseURI TransactionKind = "setBaseURI"
)

// A Transaction is a single invocation of a contract operation. Transactions
// are executed sequentially and their effect is all-or-nothing.
type Transaction struct {
	// Kind is the operation to invoke.
	Kind TransactionKind
	// Caller is the identity invoking the operation.
	Caller Address
	// Quantity is the number of units requested. Only used by mint.
	Quantity uint64
	// Payment is the amount attached to the invocation. Only used by mint.
	Payment Wei
	// URI is the new base locator. Only used by setBaseURI.
	URI string
	// Nonce distinguishes otherwise identical invocations.
	Nonce uint64
}

// transactionIDEncoding mirrors Transaction for canonical hashing.
type transactionIDEncoding struct {
	Kind     string
	Caller   []byte
	Quantity uint64
	Payment  uint64
	URI      string
	Nonce    uint64
}

// ID returns the content hash of the transaction. Two transactions with
// identical fields have identical IDs.
func (t Transaction) ID() Identifier {
	enc, err := canonicalEncMode.Marshal(transactionIDEncoding{
		Kind:     string(t.Kind),
		Caller:   t.Caller.Bytes(),
		Quantity: t.Quantity,
		Payment:  uint64(t.Payment),
		URI:      t.URI,
		Nonce:    t.Nonce,
	})
	if err != nil {
		panic(fmt.Sprintf("could not encode transaction for hashing: %s", err))
	}

	return HashToIdentifier(enc)
}

func (t Transaction) String() string {
	switch t.Kind {
	case TransactionMint:
		return fmt.Sprintf("mint(quantity: %d, payment: %s) by %s", t.Quantity, t.Payment, t.Caller)
	case TransactionReserve:
		return fmt.Sprintf("reserve() by %s", t.Caller)
	case TransactionSetBaseURI:
		return fmt.Sprintf("setBaseURI(%q) by %s", t.URI, t.Caller)
	default:
		return fmt.Sprintf("unknown transaction by %s", t.Caller)
	}
}

var canonicalEncMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	canonicalEncMode, err = opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not initialize cbor encoding mode: %s", err.Error()))
	}
}
