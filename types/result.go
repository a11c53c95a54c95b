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

import "errors"

// StorableTransactionResult is the form of a transaction result that is
// persisted by the storage layer. Errors are flattened to a message so that
// results can round-trip through any encoding.
type StorableTransactionResult struct {
	TransactionID Identifier
	ErrorMessage  string
	Events        []Event
	BlockHeight   uint64
}

// A TransactionResult is the in-memory result of executing a transaction.
type TransactionResult struct {
	TransactionID Identifier
	Error         error
	Events        []Event
	// TokenIDs lists the identifiers assigned by this transaction, in
	// assignment order. Empty for reverted or non-minting transactions.
	TokenIDs []uint64
}

// Succeeded returns true if the transaction executed without errors.
func (r TransactionResult) Succeeded() bool {
	return r.Error == nil
}

// Reverted returns true if the transaction executed with errors.
func (r TransactionResult) Reverted() bool {
	return !r.Succeeded()
}

// Storable converts the result into its persistable form.
func (r TransactionResult) Storable(blockHeight uint64) StorableTransactionResult {
	errMsg := ""
	if r.Error != nil {
		errMsg = r.Error.Error()
	}

	return StorableTransactionResult{
		TransactionID: r.TransactionID,
		ErrorMessage:  errMsg,
		Events:        r.Events,
		BlockHeight:   blockHeight,
	}
}

// Succeeded returns true if the stored transaction executed without errors.
func (r StorableTransactionResult) Succeeded() bool {
	return r.ErrorMessage == ""
}

// Reverted returns true if the stored transaction executed with errors.
func (r StorableTransactionResult) Reverted() bool {
	return !r.Succeeded()
}

// Err reconstructs the execution error from the stored message.
func (r StorableTransactionResult) Err() error {
	if r.ErrorMessage == "" {
		return nil
	}
	return errors.New(r.ErrorMessage)
}
