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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/sirupsen/logrus"

	"github.com/dropmint/drop-emulator/storage"
	"github.com/dropmint/drop-emulator/types"
)

const promptText = "drop> "

const helpText = `Commands:
  info                          show the contract parameters and supply
  supply                        show the current supply counter
  mint <qty> [eth] [caller]     mint tokens (payment defaults to qty x price)
  reserve                       mint the reserved batch to the owner
  set-base-uri <uri>            change the base locator (owner only)
  uri <id>                      resolve the metadata locator for a token
  owner-of <id>                 show the holder of a token
  wallet <addr>                 list the tokens held by an address
  block [height]                show a sealed block (default: latest)
  events <height> [type]        list the events sealed at a height
  snapshot <name>               jump to a named state snapshot
  help                          show this help
  exit                          end the session`

// A REPL reads commands from an input stream and drives the emulator with
// them.
type REPL struct {
	logger   *logrus.Logger
	console  *Console
	in       io.Reader
	out      io.Writer
	done     chan struct{}
	stopOnce sync.Once
}

// NewREPL creates a command loop bound to standard input and output.
func NewREPL(logger *logrus.Logger, console *Console) *REPL {
	return &REPL{
		logger:  logger,
		console: console,
		in:      os.Stdin,
		out:     os.Stdout,
		done:    make(chan struct{}),
	}
}

// Start reads and executes commands until the input ends, the user exits, or
// the session is stopped.
func (r *REPL) Start() error {
	scanner := bufio.NewScanner(r.in)

	r.prompt()

	for scanner.Scan() {
		select {
		case <-r.done:
			return nil
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			r.prompt()
			continue
		}

		if exit := r.execute(line); exit {
			return nil
		}

		r.prompt()
	}

	return scanner.Err()
}

// Stop ends the command loop after the current command.
func (r *REPL) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

func (r *REPL) prompt() {
	fmt.Fprint(r.out, aurora.Green(promptText))
}

func (r *REPL) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *REPL) printErr(err error) {
	fmt.Fprintf(r.out, "%s\n", aurora.Red(err.Error()))
}

// execute dispatches a single command line. It returns true when the session
// should end.
func (r *REPL) execute(line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "help":
		r.printf("%s", helpText)
	case "info":
		r.info()
	case "supply":
		r.supply()
	case "mint":
		r.mint(args)
	case "reserve":
		r.reserve()
	case "set-base-uri":
		r.setBaseURI(args)
	case "uri":
		r.tokenURI(args)
	case "owner-of":
		r.ownerOf(args)
	case "wallet":
		r.wallet(args)
	case "block":
		r.block(args)
	case "events":
		r.events(args)
	case "snapshot":
		r.snapshot(args)
	case "exit", "quit":
		return true
	default:
		r.printf("%s", aurora.Red(fmt.Sprintf("unknown command %q, try \"help\"", command)))
	}

	return false
}

func (r *REPL) info() {
	conf := r.console.Emulator().ContractConfig()

	supply, err := r.console.Emulator().TotalSupply()
	if err != nil {
		r.printErr(err)
		return
	}

	baseURI, err := r.console.Emulator().BaseTokenURI()
	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("%s (%s)", aurora.Bold(conf.Name), conf.Symbol)
	r.printf("  owner      %s", conf.Owner)
	r.printf("  supply     %d / %d", supply, conf.MaxSupply)
	r.printf("  price      %s ETH", conf.UnitPrice.Ether())
	r.printf("  mint limit %d per transaction", conf.MaxPerTransaction)
	r.printf("  base URI   %s", baseURI)
}

func (r *REPL) supply() {
	supply, err := r.console.Emulator().TotalSupply()
	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("%d", supply)
}

func (r *REPL) mint(args []string) {
	if len(args) < 1 {
		r.printErr(fmt.Errorf("usage: mint <qty> [eth] [caller]"))
		return
	}

	quantity, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.printErr(fmt.Errorf("invalid quantity %q", args[0]))
		return
	}

	conf := r.console.Emulator().ContractConfig()

	payment, _ := conf.UnitPrice.Mul(quantity)
	if len(args) >= 2 {
		payment, err = types.ParseEther(args[1])
		if err != nil {
			r.printErr(err)
			return
		}
	}

	caller := r.console.config.DefaultCaller
	if len(args) >= 3 {
		caller, err = types.ParseAddress(args[2])
		if err != nil {
			r.printErr(err)
			return
		}
	}

	result, err := r.console.Emulator().MintTokens(caller, quantity, payment)
	if err != nil {
		r.printErr(err)
		return
	}

	if result.Reverted() {
		r.printf("%s %s", aurora.Red("✘ reverted:"), result.Error)
		return
	}

	r.printf("%s minted tokens %v to %s", aurora.Green("✔"), result.TokenIDs, caller)
}

func (r *REPL) reserve() {
	owner := r.console.Emulator().ContractConfig().Owner

	result, err := r.console.Emulator().ReserveTokens(owner)
	if err != nil {
		r.printErr(err)
		return
	}

	if result.Reverted() {
		r.printf("%s %s", aurora.Red("✘ reverted:"), result.Error)
		return
	}

	r.printf("%s reserved tokens %v to %s", aurora.Green("✔"), result.TokenIDs, owner)
}

func (r *REPL) setBaseURI(args []string) {
	if len(args) != 1 {
		r.printErr(fmt.Errorf("usage: set-base-uri <uri>"))
		return
	}

	owner := r.console.Emulator().ContractConfig().Owner

	result, err := r.console.Emulator().SetBaseTokenURI(owner, args[0])
	if err != nil {
		r.printErr(err)
		return
	}

	if result.Reverted() {
		r.printf("%s %s", aurora.Red("✘ reverted:"), result.Error)
		return
	}

	r.printf("%s base URI set to %s", aurora.Green("✔"), args[0])
}

func (r *REPL) tokenURI(args []string) {
	tokenID, ok := r.parseTokenID(args)
	if !ok {
		return
	}

	uri, err := r.console.Emulator().TokenURI(tokenID)
	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("%s", uri)
}

func (r *REPL) ownerOf(args []string) {
	tokenID, ok := r.parseTokenID(args)
	if !ok {
		return
	}

	holder, err := r.console.Emulator().OwnerOf(tokenID)
	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("%s", holder)
}

func (r *REPL) wallet(args []string) {
	if len(args) != 1 {
		r.printErr(fmt.Errorf("usage: wallet <addr>"))
		return
	}

	holder, err := types.ParseAddress(args[0])
	if err != nil {
		r.printErr(err)
		return
	}

	tokenIDs, err := r.console.Emulator().WalletOfOwner(holder)
	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("%s holds %d token(s): %v", holder, len(tokenIDs), tokenIDs)
}

func (r *REPL) block(args []string) {
	var (
		block *types.Block
		err   error
	)

	if len(args) >= 1 {
		height, perr := strconv.ParseUint(args[0], 10, 64)
		if perr != nil {
			r.printErr(fmt.Errorf("invalid height %q", args[0]))
			return
		}
		block, err = r.console.Emulator().GetBlockByHeight(height)
	} else {
		block, err = r.console.Emulator().GetLatestBlock()
	}

	if err != nil {
		r.printErr(err)
		return
	}

	r.printf("height       %d", block.Height)
	r.printf("id           %s", block.ID())
	r.printf("parent       %s", block.ParentID)
	r.printf("transactions %d", len(block.TransactionIDs))
}

func (r *REPL) events(args []string) {
	if len(args) < 1 {
		r.printErr(fmt.Errorf("usage: events <height> [type]"))
		return
	}

	height, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.printErr(fmt.Errorf("invalid height %q", args[0]))
		return
	}

	eventType := ""
	if len(args) >= 2 {
		eventType = args[1]
	}

	events, err := r.console.Emulator().GetEventsByHeight(height, eventType)
	if err != nil {
		r.printErr(err)
		return
	}

	for _, event := range events {
		r.printf("%s", event)
	}
	r.printf("%d event(s)", len(events))
}

func (r *REPL) snapshot(args []string) {
	if len(args) != 1 {
		r.printErr(fmt.Errorf("usage: snapshot <name>"))
		return
	}

	provider, ok := r.console.storage.Store().(storage.SnapshotProvider)
	if !ok {
		r.printErr(fmt.Errorf("the configured storage backend does not support snapshots"))
		return
	}

	if err := provider.JumpToContext(args[0]); err != nil {
		r.printErr(err)
		return
	}

	if err := r.console.Emulator().ResetPendingBlock(); err != nil {
		r.printErr(err)
		return
	}

	r.logger.Infof("📸  Switched to snapshot %q", args[0])
}

func (r *REPL) parseTokenID(args []string) (uint64, bool) {
	if len(args) != 1 {
		r.printErr(fmt.Errorf("expected a single token ID argument"))
		return 0, false
	}

	tokenID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.printErr(fmt.Errorf("invalid token ID %q", args[0]))
		return 0, false
	}

	return tokenID, true
}
