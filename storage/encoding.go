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

package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/dropmint/drop-emulator/types"
)

var em cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	em, err = opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not initialize cbor encoding mode: %s", err.Error()))
	}
}

func encodeBlock(block types.Block) ([]byte, error) {
	return em.Marshal(block)
}

func decodeBlock(block *types.Block, from []byte) error {
	return cbor.Unmarshal(from, block)
}

func encodeTransaction(tx types.Transaction) ([]byte, error) {
	return em.Marshal(tx)
}

func decodeTransaction(tx *types.Transaction, from []byte) error {
	return cbor.Unmarshal(from, tx)
}

func encodeTransactionResult(result types.StorableTransactionResult) ([]byte, error) {
	return em.Marshal(result)
}

func decodeTransactionResult(result *types.StorableTransactionResult, from []byte) error {
	return cbor.Unmarshal(from, result)
}

func encodeUint64(v uint64) ([]byte, error) {
	return em.Marshal(v)
}

func decodeUint64(v *uint64, from []byte) error {
	return cbor.Unmarshal(from, v)
}

func encodeEvents(events []types.Event) ([]byte, error) {
	return em.Marshal(events)
}

func decodeEvents(events *[]types.Event, from []byte) error {
	return cbor.Unmarshal(from, events)
}
