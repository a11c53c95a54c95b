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
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/dropmint/drop-emulator/types"
)

// Ledger registers owned by the contract.
const (
	supplyRegister  = "supply"
	baseURIRegister = "base_uri"
)

func ownerRegister(tokenID uint64) types.RegisterID {
	return fmt.Sprintf("owner/%d", tokenID)
}

// ContractConfig holds the fixed parameters of a drop contract. They are set
// at instantiation and never change for the lifetime of the contract.
type ContractConfig struct {
	// Name is the display name of the collection.
	Name string
	// Symbol is the short ticker of the collection.
	Symbol string
	// Owner is the designated owner identity. Only the owner may reserve
	// tokens or change the base URI.
	Owner types.Address
	// MaxSupply is the total capacity. The supply counter never exceeds it.
	MaxSupply uint64
	// UnitPrice is the payment required per minted token.
	UnitPrice types.Wei
	// MaxPerTransaction bounds the quantity of a single mint.
	MaxPerTransaction uint64
	// ReserveBatchSize is the fixed batch minted by the owner reservation.
	ReserveBatchSize uint64
	// BaseURI is the initial base locator, prefixed to each token ID to form
	// its metadata locator.
	BaseURI string
}

// DefaultContractConfig returns the contract parameters used by the
// collection walkthrough this emulator accompanies.
func DefaultContractConfig() ContractConfig {
	unitPrice, _ := types.ParseEther("0.05")

	return ContractConfig{
		Name:              "Pixel Penguins",
		Symbol:            "PPNG",
		Owner:             types.HexToAddress("0x01"),
		MaxSupply:         10000,
		UnitPrice:         unitPrice,
		MaxPerTransaction: 5,
		ReserveBatchSize:  3,
		BaseURI:           "ipfs://QmYx8VdXxyg2NCYdJYMNPFVNtoRW9tEL11sxRcV6fBSBHG/",
	}
}

// A DropContract implements the reference minting semantics of a fixed-price,
// fixed-supply token drop. It is a pure state machine: every operation
// executes against a ledger view and either applies fully or returns a
// RevertError leaving the view untouched by the caller's discretion.
type DropContract struct {
	config ContractConfig
}

// NewDropContract instantiates a contract with the given parameters.
func NewDropContract(config ContractConfig) (*DropContract, error) {
	if config.MaxSupply == 0 {
		return nil, fmt.Errorf("max supply must be positive")
	}

	if config.MaxPerTransaction == 0 {
		return nil, fmt.Errorf("per-transaction mint limit must be positive")
	}

	if config.Owner.IsEmpty() {
		return nil, fmt.Errorf("contract owner must be set")
	}

	return &DropContract{config: config}, nil
}

// Config returns the contract parameters.
func (c *DropContract) Config() ContractConfig {
	return c.config
}

// Initialize writes the constructor state: a zero supply counter and the
// configured base URI.
func (c *DropContract) Initialize(view *types.LedgerView) {
	writeUint64(view, supplyRegister, 0)
	view.Set(baseURIRegister, []byte(c.config.BaseURI))
}

// Mint assigns quantity sequential token IDs to the caller, in exchange for
// payment of at least quantity times the unit price.
//
// Preconditions are checked before any state is written, so a failed mint
// leaves the view unchanged.
func (c *DropContract) Mint(
	view *types.LedgerView,
	caller types.Address,
	quantity uint64,
	payment types.Wei,
) ([]types.Event, []uint64, error) {
	if quantity == 0 {
		return nil, nil, &InvalidQuantityError{}
	}

	if quantity > c.config.MaxPerTransaction {
		return nil, nil, &MintLimitExceededError{
			Requested: quantity,
			Limit:     c.config.MaxPerTransaction,
		}
	}

	supply, err := readUint64(view, supplyRegister)
	if err != nil {
		return nil, nil, err
	}

	remaining := uint64(0)
	if supply < c.config.MaxSupply {
		remaining = c.config.MaxSupply - supply
	}
	if quantity > remaining {
		return nil, nil, &SoldOutError{
			Requested: quantity,
			Remaining: remaining,
		}
	}

	required, ok := c.config.UnitPrice.Mul(quantity)
	if !ok || payment < required {
		return nil, nil, &InsufficientPaymentError{
			Required: required,
			Provided: payment,
		}
	}

	return c.assign(view, caller, supply, quantity)
}

// Reserve mints the fixed reservation batch to the owner. Only the owner may
// invoke it and no payment is required.
func (c *DropContract) Reserve(
	view *types.LedgerView,
	caller types.Address,
) ([]types.Event, []uint64, error) {
	if caller != c.config.Owner {
		return nil, nil, &NotOwnerError{Caller: caller}
	}

	supply, err := readUint64(view, supplyRegister)
	if err != nil {
		return nil, nil, err
	}

	remaining := uint64(0)
	if supply < c.config.MaxSupply {
		remaining = c.config.MaxSupply - supply
	}
	if c.config.ReserveBatchSize > remaining {
		return nil, nil, &SoldOutError{
			Requested: c.config.ReserveBatchSize,
			Remaining: remaining,
		}
	}

	return c.assign(view, c.config.Owner, supply, c.config.ReserveBatchSize)
}

// assign writes quantity new owner registers starting after the current
// supply and advances the supply counter.
func (c *DropContract) assign(
	view *types.LedgerView,
	to types.Address,
	supply uint64,
	quantity uint64,
) ([]types.Event, []uint64, error) {
	events := make([]types.Event, 0, quantity)
	tokenIDs := make([]uint64, 0, quantity)

	for i := uint64(0); i < quantity; i++ {
		// token IDs are 1-based
		tokenID := supply + i + 1

		view.Set(ownerRegister(tokenID), to.Bytes())

		tokenIDs = append(tokenIDs, tokenID)
		events = append(events, types.Event{
			Type:    types.EventTransfer,
			Index:   uint32(i),
			TokenID: tokenID,
			From:    types.EmptyAddress,
			To:      to,
		})
	}

	writeUint64(view, supplyRegister, supply+quantity)

	return events, tokenIDs, nil
}

// SetBaseURI replaces the base locator. Only the owner may invoke it.
func (c *DropContract) SetBaseURI(
	view *types.LedgerView,
	caller types.Address,
	uri string,
) ([]types.Event, error) {
	if caller != c.config.Owner {
		return nil, &NotOwnerError{Caller: caller}
	}

	view.Set(baseURIRegister, []byte(uri))

	return []types.Event{{
		Type: types.EventBaseURIChanged,
		URI:  uri,
	}}, nil
}

// TotalSupply reads the number of tokens issued so far.
func (c *DropContract) TotalSupply(view *types.LedgerView) (uint64, error) {
	return readUint64(view, supplyRegister)
}

// BaseURI reads the current base locator.
func (c *DropContract) BaseURI(view *types.LedgerView) (string, error) {
	value, err := view.Get(baseURIRegister)
	if err != nil {
		return "", err
	}

	return string(value), nil
}

// OwnerOf reads the holder of a token.
func (c *DropContract) OwnerOf(view *types.LedgerView, tokenID uint64) (types.Address, error) {
	value, err := view.Get(ownerRegister(tokenID))
	if err != nil {
		return types.EmptyAddress, err
	}

	if value == nil {
		return types.EmptyAddress, &TokenNotFoundError{TokenID: tokenID}
	}

	var holder types.Address
	copy(holder[:], value)

	return holder, nil
}

// TokenURI resolves the metadata locator for a token: the base locator
// concatenated with the decimal token ID. Resolution is deterministic in
// (base, tokenID).
func (c *DropContract) TokenURI(view *types.LedgerView, tokenID uint64) (string, error) {
	// existence check first so the locator never resolves for unminted IDs
	if _, err := c.OwnerOf(view, tokenID); err != nil {
		return "", err
	}

	base, err := c.BaseURI(view)
	if err != nil {
		return "", err
	}

	return base + strconv.FormatUint(tokenID, 10), nil
}

// WalletOfOwner lists the token IDs held by an identity, in ascending order.
func (c *DropContract) WalletOfOwner(view *types.LedgerView, holder types.Address) ([]uint64, error) {
	supply, err := readUint64(view, supplyRegister)
	if err != nil {
		return nil, err
	}

	tokenIDs := make([]uint64, 0)

	for tokenID := uint64(1); tokenID <= supply; tokenID++ {
		owner, err := c.OwnerOf(view, tokenID)
		if err != nil {
			return nil, err
		}

		if owner == holder {
			tokenIDs = append(tokenIDs, tokenID)
		}
	}

	return tokenIDs, nil
}

// BalanceOf counts the tokens held by an identity.
func (c *DropContract) BalanceOf(view *types.LedgerView, holder types.Address) (uint64, error) {
	tokenIDs, err := c.WalletOfOwner(view, holder)
	if err != nil {
		return 0, err
	}

	return uint64(len(tokenIDs)), nil
}

func readUint64(view *types.LedgerView, key types.RegisterID) (uint64, error) {
	value, err := view.Get(key)
	if err != nil {
		return 0, err
	}

	if len(value) < 8 {
		return 0, nil
	}

	return binary.BigEndian.Uint64(value), nil
}

func writeUint64(view *types.LedgerView, key types.RegisterID, v uint64) {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)
	view.Set(key, value)
}
