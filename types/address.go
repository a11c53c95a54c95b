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
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 20

// An Address is the 20-byte identity of a caller or token holder.
type Address [AddressLength]byte

// EmptyAddress is the zero address. No tokens are ever assigned to it.
var EmptyAddress = Address{}

// HexToAddress parses a hex-encoded address, with or without a 0x prefix.
// Input longer than 20 bytes is truncated from the left, shorter input is
// left-padded with zeros, matching the common address parsing convention.
func HexToAddress(h string) Address {
	trimmed := strings.TrimPrefix(h, "0x")
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}

	b, _ := hex.DecodeString(trimmed)

	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)

	return a
}

// ParseAddress parses a hex-encoded address, with or without a 0x prefix.
// Unlike HexToAddress it rejects malformed or oversized input instead of
// coercing it. Shorter input is left-padded with zeros.
func ParseAddress(h string) (Address, error) {
	trimmed := strings.TrimPrefix(h, "0x")
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}

	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return EmptyAddress, fmt.Errorf("invalid address %q: %w", h, err)
	}
	if len(b) > AddressLength {
		return EmptyAddress, fmt.Errorf("invalid address %q: longer than %d bytes", h, AddressLength)
	}

	var a Address
	copy(a[AddressLength-len(b):], b)

	return a, nil
}

// Bytes returns the raw bytes of the address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Hex returns the hex encoding of the address without a prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// HexWithPrefix returns the 0x-prefixed hex encoding of the address.
func (a Address) HexWithPrefix() string {
	return fmt.Sprintf("0x%s", a.Hex())
}

func (a Address) String() string {
	return a.HexWithPrefix()
}

// IsEmpty returns true if this is the zero address.
func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}
