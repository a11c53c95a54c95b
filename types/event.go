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

import "fmt"

const (
	// EventTransfer is emitted once per minted token. From is the empty
	// address for mints.
	EventTransfer = "Transfer"
	// EventBaseURIChanged is emitted when the base locator is updated.
	EventBaseURIChanged = "BaseURIChanged"
)

// An Event is emitted during transaction execution and stored with the block
// that sealed the transaction.
type Event struct {
	// Type is one of the Event* constants.
	Type string
	// TransactionID is the transaction that emitted this event.
	TransactionID Identifier
	// Index is the position of the event within its transaction.
	Index uint32
	// TokenID is the token concerned. Zero for non-token events.
	TokenID uint64
	// From is the previous holder. Empty for mints.
	From Address
	// To is the new holder. Empty for non-transfer events.
	To Address
	// URI is the new base locator for EventBaseURIChanged events.
	URI string
}

func (e Event) String() string {
	switch e.Type {
	case EventTransfer:
		return fmt.Sprintf("Transfer(token: %d, from: %s, to: %s)", e.TokenID, e.From, e.To)
	case EventBaseURIChanged:
		return fmt.Sprintf("BaseURIChanged(%q)", e.URI)
	default:
		return e.Type
	}
}
