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
	"crypto/sha256"
	"encoding/hex"
)

// An Identifier is the 32-byte content hash of a block or transaction.
type Identifier [32]byte

// EmptyIdentifier is the zero identifier.
var EmptyIdentifier = Identifier{}

// HashToIdentifier hashes arbitrary bytes into an identifier.
func HashToIdentifier(data []byte) Identifier {
	return Identifier(sha256.Sum256(data))
}

// HexToIdentifier parses a hex-encoded identifier.
func HexToIdentifier(h string) Identifier {
	b, _ := hex.DecodeString(h)

	var id Identifier
	copy(id[:], b)

	return id
}

// Bytes returns the raw bytes of the identifier.
func (i Identifier) Bytes() []byte {
	return i[:]
}

// Hex returns the hex encoding of the identifier.
func (i Identifier) Hex() string {
	return hex.EncodeToString(i[:])
}

func (i Identifier) String() string {
	return i.Hex()
}
