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
	"math"
	"math/big"
	"strings"
)

// Wei is an amount of payment attached to a transaction, denominated in the
// smallest unit. One whole token is 10^18 wei.
type Wei uint64

const weiPerToken = 1e18

// ParseEther parses a decimal token amount (e.g. "0.05") into wei.
func ParseEther(s string) (Wei, error) {
	f, ok := new(big.Float).SetString(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("invalid decimal amount: %q", s)
	}
	if f.Sign() < 0 {
		return 0, fmt.Errorf("amount cannot be negative: %q", s)
	}

	wei, _ := new(big.Float).Mul(f, big.NewFloat(weiPerToken)).Uint64()
	return Wei(wei), nil
}

// Ether formats the amount as a decimal token value.
func (w Wei) Ether() string {
	f := new(big.Float).Quo(new(big.Float).SetUint64(uint64(w)), big.NewFloat(weiPerToken))
	return f.Text('f', -1)
}

func (w Wei) String() string {
	return fmt.Sprintf("%d", uint64(w))
}

// Mul returns the amount multiplied by a unit count. When the product does
// not fit in the wei range it saturates at the maximum amount and returns
// false.
func (w Wei) Mul(n uint64) (Wei, bool) {
	if w != 0 && n > math.MaxUint64/uint64(w) {
		return Wei(math.MaxUint64), false
	}
	return Wei(uint64(w) * n), true
}
