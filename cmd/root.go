package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/statesmith/corestate/app"
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/identity"
	"github.com/statesmith/corestate/node"
	"github.com/statesmith/corestate/snapshot"
)

var (
	// Used for flags.
	homeDir    string
	socketAddr string
	idFile     string
	chainID    string
	feeSymbol  string

	// e.g. corestate --home /tmp/.corestate-home
	rootCmd = &cobra.Command{
		Use:   "corestate [subcommand]",
		Short: "corestate is a BFT application framework node",

		Long: `corestate runs an ABCI application server over a fixed plugin
stack (chain-id, sdk-compat, signer, nonce, fee, query, application) backed
by an authenticated merkle state tree. It focuses on providing:

  - deterministic, versioned application state with ICS-23 proofs ; and
  - a signer-agnostic transaction pipeline (native, ADR-36, amino, Ethereum) ; and
  - state-sync snapshotting and a supervised consensus engine child process.`,

		Example: `  corestate start
  corestate version
  corestate start --home /tmp/.corestate --socket unix://corestate.sock --id /tmp/.corestate/id`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&homeDir,
		"home",
		"",
		"Path to the node's data directory (if empty, uses $HOME/.corestate)",
	)
	rootCmd.PersistentFlags().StringVar(
		&idFile,
		"id",
		"",
		"Path to the identity file (if empty, uses $HOME/.corestate/id)",
	)

	startCmd.PersistentFlags().StringVar(
		&socketAddr,
		"socket",
		"unix://corestate.sock",
		"Unix domain socket address the consensus engine dials",
	)
	startCmd.PersistentFlags().StringVar(
		&chainID,
		"chain-id",
		"corestate",
		"Chain ID mixed into every signed call's digest",
	)
	startCmd.PersistentFlags().StringVar(
		&feeSymbol,
		"fee-symbol",
		"ucore",
		"Denomination the fee plugin collects",
	)

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(resetCmd)
}

func initConfig() {
	if homeDir == "" {
		home, _ := os.UserHomeDir()
		homeDir = filepath.Join(home, ".corestate")
	}
	if idFile == "" {
		idFile = filepath.Join(homeDir, "id")
	}
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the corestate ABCI application server",
	Long:  `Start the corestate ABCI application server, wiring Accounts under the fixed plugin stack.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Enter your password: ")
		pw, err := term.ReadPassword(0)
		if err != nil {
			log.Fatalf("could not read password: %v", err)
		}
		fmt.Printf("\n")

		if _, err := os.Stat(idFile); os.IsNotExist(err) {
			identity.MustGenerate(idFile, pw)
		}

		if err := node.Run(node.Config{
			HomeDir:         homeDir,
			SocketAddr:      socketAddr,
			ChainID:         chainID,
			FeeSymbol:       coins.Symbol(feeSymbol),
			Factory:         app.Factory,
			SnapshotFilters: []snapshot.Filter{snapshot.IntervalFilter{Interval: 1000, Limit: 3}},
		}); err != nil {
			log.Fatalf("node exited with error: %v", err)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe a node's local data directory",
	Long:  `Remove the node's leveldb data directory, leaving the identity file untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		dbPath := filepath.Join(homeDir, "leveldb")
		if err := os.RemoveAll(dbPath); err != nil {
			log.Fatalf("could not reset data directory: %v", err)
		}
		fmt.Printf("removed %s\n", dbPath)
	},
}

// Execute runs the root command, exiting the process on error or panic.
func Execute() {
	defer func() {
		if err := recover(); err != nil {
			log.Fatalf("error running corestate: %v", err)
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error running corestate: %v", err)
	}
}
