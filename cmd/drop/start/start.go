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

package start

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/psiemens/sconfig"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dropmint/drop-emulator/console"
	"github.com/dropmint/drop-emulator/types"
)

type Config struct {
	Verbose          bool          `default:"false" flag:"verbose,v" info:"enable verbose logging"`
	LogFormat        string        `default:"text" flag:"log-format" info:"logging output format. Valid values (text, JSON)"`
	ContractName     string        `default:"" flag:"name" info:"collection name"`
	ContractSymbol   string        `default:"" flag:"symbol" info:"collection token symbol"`
	Owner            string        `default:"" flag:"owner" info:"contract owner address"`
	DefaultCaller    string        `default:"" flag:"caller" info:"default caller address for console commands"`
	MaxSupply        uint64        `default:"0" flag:"max-supply" info:"total number of mintable tokens"`
	UnitPrice        string        `default:"" flag:"unit-price" info:"price per token in ETH, e.g. '0.05'"`
	MaxMint          uint64        `default:"0" flag:"max-mint" info:"maximum tokens per mint transaction"`
	ReserveBatch     uint64        `default:"0" flag:"reserve-batch" info:"number of tokens minted by the owner reserve"`
	BaseURI          string        `default:"" flag:"base-uri" info:"base metadata locator, e.g. 'ipfs://<cid>/'"`
	Persist          bool          `default:"false" flag:"persist" info:"enable persistent storage"`
	Snapshot         bool          `default:"false" flag:"snapshot" info:"enable state snapshots"`
	DBPath           string        `default:"./dropdb" flag:"dbpath" info:"path to database directory"`
	DBGCInterval     time.Duration `default:"5m" flag:"db-gc-interval" info:"interval between database garbage collection runs"`
	DBGCDiscardRatio float64       `default:"0.5" flag:"db-gc-ratio" info:"discard ratio for database garbage collection"`
	RedisURL         string        `default:"" flag:"redis-url" info:"redis-server URL for persisting redis storage backend ( redis://[[username:]password@]host[:port][/database] ) "`
	SqliteURL        string        `default:"" flag:"sqlite-url" info:"sqlite db URL for persisting sqlite storage backend "`
}

const EnvPrefix = "DROP"

var conf Config

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Starts an interactive drop contract session",
		Run: func(cmd *cobra.Command, args []string) {
			logger := initLogger(conf.Verbose)

			unitPrice := types.Wei(0)
			if conf.UnitPrice != "" {
				var err error
				unitPrice, err = types.ParseEther(conf.UnitPrice)
				if err != nil {
					Exit(1, fmt.Sprintf("Failed to parse unit-price from value `%s`: %s", conf.UnitPrice, err.Error()))
				}
			}

			owner, err := types.ParseAddress(conf.Owner)
			if err != nil {
				Exit(1, fmt.Sprintf("Failed to parse owner from value `%s`: %s", conf.Owner, err.Error()))
			}

			defaultCaller, err := types.ParseAddress(conf.DefaultCaller)
			if err != nil {
				Exit(1, fmt.Sprintf("Failed to parse caller from value `%s`: %s", conf.DefaultCaller, err.Error()))
			}

			consoleConf := &console.Config{
				ContractName:      conf.ContractName,
				ContractSymbol:    conf.ContractSymbol,
				Owner:             owner,
				DefaultCaller:     defaultCaller,
				MaxSupply:         conf.MaxSupply,
				UnitPrice:         unitPrice,
				MaxPerTransaction: conf.MaxMint,
				ReserveBatchSize:  conf.ReserveBatch,
				BaseURI:           conf.BaseURI,
				Persist:           conf.Persist,
				Snapshot:          conf.Snapshot,
				DBPath:            conf.DBPath,
				DBGCInterval:      conf.DBGCInterval,
				DBGCDiscardRatio:  conf.DBGCDiscardRatio,
				RedisURL:          conf.RedisURL,
				SqliteURL:         conf.SqliteURL,
			}

			zlogger := initZerolog(conf.Verbose)
			zlogger.Info().
				Str("dbpath", conf.DBPath).
				Bool("persist", conf.Persist).
				Msg("🌱  Starting drop emulator")

			session, err := console.NewConsole(logger, consoleConf)
			if err != nil {
				Exit(1, err.Error())
			}

			session.Start()
		},
	}

	initConfig(cmd)

	return cmd
}

func initLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.Formatter = new(logrus.TextFormatter)
	logger.Out = os.Stdout

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func initZerolog(verbose bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.MessageFieldName = "msg"

	switch strings.ToLower(conf.LogFormat) {
	case "json":
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
		return &logger
	default:
		writer := zerolog.ConsoleWriter{Out: os.Stdout}
		writer.FormatMessage = func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%-44s", i)
		}
		logger := zerolog.New(writer).With().Timestamp().Logger().Level(level)
		return &logger
	}
}

func initConfig(cmd *cobra.Command) {
	err := sconfig.New(&conf).
		FromEnvironment(EnvPrefix).
		BindFlags(cmd.PersistentFlags()).
		Parse()
	if err != nil {
		log.Fatal(err)
	}
}

func Exit(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
