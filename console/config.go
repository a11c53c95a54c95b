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

package console

import (
	"time"

	emulator "github.com/dropmint/drop-emulator"
	"github.com/dropmint/drop-emulator/types"
)

const (
	defaultDBGCInterval = time.Minute * 5
	defaultDBGCRatio    = 0.5
)

// Config is the configuration for an emulator console session.
type Config struct {
	// ContractName is the display name of the emulated collection.
	ContractName string
	// ContractSymbol is the collection ticker.
	ContractSymbol string
	// Owner is the contract owner identity.
	Owner types.Address
	// DefaultCaller is the identity used for mint commands that do not name
	// a caller.
	DefaultCaller types.Address
	// MaxSupply is the collection capacity.
	MaxSupply uint64
	// UnitPrice is the price per token.
	UnitPrice types.Wei
	// MaxPerTransaction bounds a single mint.
	MaxPerTransaction uint64
	// ReserveBatchSize is the owner reservation batch.
	ReserveBatchSize uint64
	// BaseURI is the initial base locator.
	BaseURI string
	// Persist enables persistent storage.
	Persist bool
	// Snapshot enables named state snapshots (requires Persist).
	Snapshot bool
	// DBPath is the path to the Badger database on disk.
	DBPath string
	// DBGCInterval is the time interval at which to garbage collect the
	// Badger value log.
	DBGCInterval time.Duration
	// DBGCDiscardRatio is the ratio of space to reclaim during a Badger
	// garbage collection run.
	DBGCDiscardRatio float64
	// RedisURL selects the Redis storage backend when non-empty.
	RedisURL string
	// SqliteURL selects the SQLite storage backend when non-empty.
	SqliteURL string
}

func sanitizeConfig(conf *Config) *Config {
	defaults := emulator.DefaultContractConfig()

	if conf.ContractName == "" {
		conf.ContractName = defaults.Name
	}

	if conf.ContractSymbol == "" {
		conf.ContractSymbol = defaults.Symbol
	}

	if conf.Owner.IsEmpty() {
		conf.Owner = defaults.Owner
	}

	if conf.DefaultCaller.IsEmpty() {
		conf.DefaultCaller = types.HexToAddress("0x02")
	}

	if conf.MaxSupply == 0 {
		conf.MaxSupply = defaults.MaxSupply
	}

	if conf.UnitPrice == 0 {
		conf.UnitPrice = defaults.UnitPrice
	}

	if conf.MaxPerTransaction == 0 {
		conf.MaxPerTransaction = defaults.MaxPerTransaction
	}

	if conf.ReserveBatchSize == 0 {
		conf.ReserveBatchSize = defaults.ReserveBatchSize
	}

	if conf.BaseURI == "" {
		conf.BaseURI = defaults.BaseURI
	}

	if conf.DBPath == "" {
		conf.DBPath = "./dropdb"
	}

	if conf.DBGCInterval == 0 {
		conf.DBGCInterval = defaultDBGCInterval
	}

	if conf.DBGCDiscardRatio == 0 {
		conf.DBGCDiscardRatio = defaultDBGCRatio
	}

	return conf
}

// contractConfig assembles the emulated contract parameters from the console
// configuration.
func (c *Config) contractConfig() emulator.ContractConfig {
	return emulator.ContractConfig{
		Name:              c.ContractName,
		Symbol:            c.ContractSymbol,
		Owner:             c.Owner,
		MaxSupply:         c.MaxSupply,
		UnitPrice:         c.UnitPrice,
		MaxPerTransaction: c.MaxPerTransaction,
		ReserveBatchSize:  c.ReserveBatchSize,
		BaseURI:           c.BaseURI,
	}
}
