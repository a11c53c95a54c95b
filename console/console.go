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

// Package console runs an interactive emulator session: a local drop contract
// driven from a command prompt, backed by pluggable persistent storage.
package console

import (
	"github.com/psiemens/graceland"
	"github.com/sirupsen/logrus"

	emulator "github.com/dropmint/drop-emulator"
)

// Console is an interactive session around an emulated drop contract.
type Console struct {
	logger   *logrus.Logger
	config   *Config
	emulator *emulator.Emulator
	storage  Storage
	repl     *REPL
	group    *graceland.Group
}

// NewConsole creates a new console session around a freshly configured
// emulator.
func NewConsole(logger *logrus.Logger, conf *Config) (*Console, error) {
	conf = sanitizeConfig(conf)

	store, err := configureStorage(logger, conf)
	if err != nil {
		logger.WithError(err).Error("❗  Failed to configure storage")
		return nil, err
	}

	emu, err := emulator.NewEmulator(
		emulator.WithStore(store.Store()),
		emulator.WithContractConfig(conf.contractConfig()),
	)
	if err != nil {
		logger.WithError(err).Error("❗  Failed to configure emulated contract")
		return nil, err
	}

	console := &Console{
		logger:   logger,
		config:   conf,
		emulator: emu,
		storage:  store,
	}
	console.repl = NewREPL(logger, console)

	return console, nil
}

// Emulator returns the emulated contract session.
func (c *Console) Emulator() *emulator.Emulator {
	return c.emulator
}

// Start runs the console until the user exits or a routine fails.
//
// This is a blocking call.
func (c *Console) Start() {
	c.Stop()

	c.group = graceland.NewGroup()

	contractConf := c.emulator.ContractConfig()
	c.logger.WithFields(logrus.Fields{
		"name":      contractConf.Name,
		"symbol":    contractConf.Symbol,
		"owner":     contractConf.Owner.String(),
		"maxSupply": contractConf.MaxSupply,
	}).Infof(
		"🐧  Emulating %s (%s): %d tokens at %s ETH each",
		contractConf.Name,
		contractConf.Symbol,
		contractConf.MaxSupply,
		contractConf.UnitPrice.Ether(),
	)

	c.group.Add(c.repl)

	// routines are shut down in insertion order, so storage is added last
	c.group.Add(c.storage)

	err := c.group.Start()
	if err != nil {
		c.logger.WithError(err).Error("❗  Console error")
	}

	c.Stop()
}

// Stop shuts down the session routines.
func (c *Console) Stop() {
	if c.group == nil {
		return
	}

	c.group.Stop()
	c.group = nil

	c.logger.Info("🛑  Session ended")
}
