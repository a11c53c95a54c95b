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

package emulator

import (
	"fmt"

	"github.com/dropmint/drop-emulator/types"
)

type NotFoundError interface {
	isNotFoundError()
}

// BlockNotFoundByHeightError indicates that a block could not be found at the specified height.
type BlockNotFoundByHeightError struct {
	Height uint64
}

func (e *BlockNotFoundByHeightError) isNotFoundError() {}

func (e *BlockNotFoundByHeightError) Error() string {
	return fmt.Sprintf("could not find block at height %d", e.Height)
}

// BlockNotFoundByIDError indicates that a block with the specified ID could not be found.
type BlockNotFoundByIDError struct {
	ID types.Identifier
}

func (e *BlockNotFoundByIDError) isNotFoundError() {}

func (e *BlockNotFoundByIDError) Error() string {
	return fmt.Sprintf("could not find block with ID %s", e.ID)
}

// TransactionNotFoundError indicates that a transaction could not be found.
type TransactionNotFoundError struct {
	ID types.Identifier
}

func (e *TransactionNotFoundError) isNotFoundError() {}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("could not find transaction with ID %s", e.ID)
}

// TokenNotFoundError indicates that a token with the given identifier has not
// been minted.
type TokenNotFoundError struct {
	TokenID uint64
}

func (e *TokenNotFoundError) isNotFoundError() {}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("could not find token with ID %d", e.TokenID)
}

// DuplicateTransactionError indicates that a transaction has already been submitted.
type DuplicateTransactionError struct {
	TxID types.Identifier
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("transaction with ID %s has already been submitted", e.TxID)
}

// InvalidTransactionError indicates that a submitted transaction is invalid (missing required fields).
type InvalidTransactionError struct {
	TxID          types.Identifier
	MissingFields []string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf(
		"transaction with ID %s is invalid (missing required fields): %v",
		e.TxID,
		e.MissingFields,
	)
}

// A RevertError indicates that a contract operation aborted without effect.
type RevertError interface {
	isRevertError()
}

// InvalidQuantityError indicates a mint request for zero units.
type InvalidQuantityError struct{}

func (e *InvalidQuantityError) isRevertError() {}

func (e *InvalidQuantityError) Error() string {
	return "requested quantity must be positive"
}

// MintLimitExceededError indicates a mint request above the per-transaction maximum.
type MintLimitExceededError struct {
	Requested uint64
	Limit     uint64
}

func (e *MintLimitExceededError) isRevertError() {}

func (e *MintLimitExceededError) Error() string {
	return fmt.Sprintf("requested quantity %d exceeds the per-transaction limit of %d", e.Requested, e.Limit)
}

// SoldOutError indicates a mint request that would push the supply above the
// maximum capacity.
type SoldOutError struct {
	Requested uint64
	Remaining uint64
}

func (e *SoldOutError) isRevertError() {}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("requested quantity %d exceeds the remaining supply of %d", e.Requested, e.Remaining)
}

// InsufficientPaymentError indicates a mint request with payment below
// quantity times the unit price.
type InsufficientPaymentError struct {
	Required types.Wei
	Provided types.Wei
}

func (e *InsufficientPaymentError) isRevertError() {}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("payment of %s wei is below the required %s wei", e.Provided, e.Required)
}

// NotOwnerError indicates that an owner-only operation was invoked by another
// identity.
type NotOwnerError struct {
	Caller types.Address
}

func (e *NotOwnerError) isRevertError() {}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("caller %s is not the contract owner", e.Caller)
}

// IsRevertError returns true if err is a contract revert rather than an
// emulator failure.
func IsRevertError(err error) bool {
	_, ok := err.(RevertError)
	return ok
}

// PendingBlockCommitBeforeExecutionError indicates that the current pending block has not been executed (cannot commit).
type PendingBlockCommitBeforeExecutionError struct {
	BlockID types.Identifier
}

func (e *PendingBlockCommitBeforeExecutionError) Error() string {
	return fmt.Sprintf("pending block with ID %s cannot be committed before execution", e.BlockID)
}

// PendingBlockMidExecutionError indicates that the current pending block is mid-execution.
type PendingBlockMidExecutionError struct {
	BlockID types.Identifier
}

func (e *PendingBlockMidExecutionError) Error() string {
	return fmt.Sprintf("pending block with ID %s is currently being executed", e.BlockID)
}

// PendingBlockTransactionsExhaustedError indicates that the current pending block has finished executing (no more transactions to execute).
type PendingBlockTransactionsExhaustedError struct {
	BlockID types.Identifier
}

func (e *PendingBlockTransactionsExhaustedError) Error() string {
	return fmt.Sprintf("pending block with ID %s contains no more transactions to execute", e.BlockID)
}

// StorageError indicates that an error occurred in the storage provider.
type StorageError struct {
	inner error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.inner)
}

func (e *StorageError) Unwrap() error {
	return e.inner
}
