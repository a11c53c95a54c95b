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

package badger

import (
	"github.com/dgraph-io/badger/v2"
)

// Config defines the configurable parameters of the Badger storage
// implementation.
type Config struct {
	// Logger is where Badger system logs will go.
	Logger badger.Logger
	// DBPath is the path to the database directory.
	DBPath string
	// InMemory runs Badger without touching disk.
	InMemory bool
	// Snapshot enables git-backed named state snapshots.
	Snapshot bool
	// Truncate whether to truncate the write log to remove corrupt data.
	Truncate bool
	// BadgerOptions are the resolved options passed to badger.Open.
	BadgerOptions badger.Options
}

// getBadgerConfig resolves the configuration, starting with defaultConfig,
// applying any options, then merging with the Badger default options.
func getBadgerConfig(opts ...Opt) Config {
	conf := defaultConfig
	for _, applyOption := range opts {
		applyOption(&conf)
	}

	badgerOptions := badger.DefaultOptions(conf.DBPath)
	badgerOptions.Logger = conf.Logger
	badgerOptions.Truncate = conf.Truncate
	badgerOptions.InMemory = conf.InMemory
	if conf.InMemory {
		badgerOptions.Dir = ""
		badgerOptions.ValueDir = ""
	}

	conf.BadgerOptions = badgerOptions

	return conf
}

// noopLogger implements the badger.Logger interface and discards all logs.
type noopLogger struct{}

func (noopLogger) Errorf(string, ...interface{})   {}
func (noopLogger) Warningf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})    {}
func (noopLogger) Debugf(string, ...interface{})   {}

// The default config to use when instantiating a Badger store.
var defaultConfig = Config{
	Logger: noopLogger{},
	DBPath: "./dropdb",
}

type Opt func(*Config)

func WithPath(path string) Opt {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithLogger(logger badger.Logger) Opt {
	return func(c *Config) {
		c.Logger = logger
	}
}

func WithInMemory() Opt {
	return func(c *Config) {
		c.InMemory = true
	}
}

func WithSnapshot(snapshot bool) Opt {
	return func(c *Config) {
		c.Snapshot = snapshot
	}
}

func WithTruncate(trunc bool) Opt {
	return func(c *Config) {
		c.Truncate = trunc
	}
}
