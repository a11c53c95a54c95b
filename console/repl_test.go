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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSession feeds a script of commands to a fresh in-memory session and
// returns everything the REPL printed.
func runSession(t *testing.T, script string) string {
	console, err := NewConsole(testLogger(), &Config{})
	require.NoError(t, err)

	repl := NewREPL(testLogger(), console)
	repl.in = strings.NewReader(script)

	var out bytes.Buffer
	repl.out = &out

	require.NoError(t, repl.Start())

	return out.String()
}

func TestREPLMint(t *testing.T) {

	t.Parallel()

	out := runSession(t, "mint 2\nsupply\nexit\n")

	assert.Contains(t, out, "minted tokens [1 2]")
	assert.Contains(t, out, "2\n")
}

func TestREPLReserve(t *testing.T) {

	t.Parallel()

	out := runSession(t, "reserve\nexit\n")

	assert.Contains(t, out, "reserved tokens [1 2 3]")
}

func TestREPLMintReverts(t *testing.T) {

	t.Parallel()

	// over the per-transaction limit
	out := runSession(t, "mint 6\n")

	assert.Contains(t, out, "reverted")
}

func TestREPLSetBaseURI(t *testing.T) {

	t.Parallel()

	out := runSession(t, "mint 1\nset-base-uri ipfs://QmRevealed/\nuri 1\nexit\n")

	assert.Contains(t, out, "base URI set to ipfs://QmRevealed/")
	assert.Contains(t, out, "ipfs://QmRevealed/1")
}

func TestREPLViews(t *testing.T) {

	t.Parallel()

	out := runSession(t, "mint 1\nowner-of 1\nwallet 0x02\nblock\nexit\n")

	// the default caller holds the minted token
	assert.Contains(t, out, "0x0000000000000000000000000000000000000002")
	assert.Contains(t, out, "holds 1 token(s): [1]")
	assert.Contains(t, out, "height       1")
}

func TestREPLEvents(t *testing.T) {

	t.Parallel()

	out := runSession(t, "mint 2\nevents 1\nexit\n")

	assert.Contains(t, out, "2 event(s)")
}

func TestREPLErrors(t *testing.T) {

	t.Parallel()

	t.Run("unknown command", func(t *testing.T) {
		out := runSession(t, "frobnicate\nexit\n")
		assert.Contains(t, out, `unknown command "frobnicate"`)
	})

	t.Run("bad arguments", func(t *testing.T) {
		out := runSession(t, "mint\nuri abc\nexit\n")
		assert.Contains(t, out, "usage: mint")
		assert.Contains(t, out, `invalid token ID "abc"`)
	})

	t.Run("malformed addresses are rejected", func(t *testing.T) {
		out := runSession(t, "wallet zzz\nmint 1 1 nothex\nexit\n")
		assert.Contains(t, out, `invalid address "zzz"`)
		assert.Contains(t, out, `invalid address "nothex"`)
	})

	t.Run("snapshots need a capable backend", func(t *testing.T) {
		out := runSession(t, "snapshot prelaunch\nexit\n")
		assert.Contains(t, out, "does not support snapshots")
	})
}
