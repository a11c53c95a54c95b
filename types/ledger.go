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

// A RegisterID identifies a single cell of contract state.
type RegisterID = string

// A LedgerDelta is a set of register writes produced by executing one or more
// transactions against a LedgerView.
type LedgerDelta map[RegisterID][]byte

// Updates returns the register writes contained in the delta.
func (d LedgerDelta) Updates() map[RegisterID][]byte {
	return d
}

// MergeWith applies all writes from other on top of this delta.
func (d LedgerDelta) MergeWith(other LedgerDelta) {
	for key, value := range other {
		d[key] = value
	}
}

// A GetRegisterFunc reads a register from an underlying state. A missing
// register yields (nil, nil).
type GetRegisterFunc func(key RegisterID) ([]byte, error)

// A LedgerView is a read-through view into committed ledger state that
// accumulates uncommitted writes in a delta.
//
// Views form a hierarchy: a child view layers its own delta on top of the
// parent. Merging the child back into the parent applies its writes; dropping
// the child discards them. This is how transaction execution gets its
// all-or-nothing semantics.
type LedgerView struct {
	delta    LedgerDelta
	readFunc GetRegisterFunc
}

// NewLedgerView instantiates a view with an empty delta over the provided
// read function.
func NewLedgerView(readFunc GetRegisterFunc) *LedgerView {
	return &LedgerView{
		delta:    make(LedgerDelta),
		readFunc: readFunc,
	}
}

// NewChild returns a view whose reads fall through to this view and whose
// writes stay local until merged.
func (v *LedgerView) NewChild() *LedgerView {
	return NewLedgerView(v.Get)
}

// Get reads a register, preferring uncommitted writes over the underlying
// state. A register that was never written yields (nil, nil).
func (v *LedgerView) Get(key RegisterID) ([]byte, error) {
	if value, ok := v.delta[key]; ok {
		return value, nil
	}

	return v.readFunc(key)
}

// Set writes a register into the view's delta.
func (v *LedgerView) Set(key RegisterID, value []byte) {
	v.delta[key] = value
}

// MergeView applies all of the child view's writes to this view.
func (v *LedgerView) MergeView(child *LedgerView) {
	v.delta.MergeWith(child.Delta())
}

// Delta returns the uncommitted writes accumulated by this view.
func (v *LedgerView) Delta() LedgerDelta {
	return v.delta
}
