package node

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	abciserver "github.com/cometbft/cometbft/abci/server"
	cmtdb "github.com/cometbft/cometbft-db"
	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/statesmith/corestate/abci"
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/merkle"
	"github.com/statesmith/corestate/snapshot"
)

// stopHeightEnv is the environment variable an operator sets to halt the
// process cleanly at a known height ahead of a coordinated binary upgrade.
const stopHeightEnv = "STOP_HEIGHT"

// Config bundles everything Run needs to bring up the ABCI socket server.
type Config struct {
	// HomeDir is the node's data directory; its leveldb subdirectory backs
	// the merkle tree.
	HomeDir string

	// SocketAddr is the unix or tcp address the consensus engine dials to
	// reach this application, e.g. "unix://vfs.sock".
	SocketAddr string

	ChainID   string
	FeeSymbol coins.Symbol

	// Factory builds the application wired under the plugin stack; see
	// abci.Factory.
	Factory abci.Factory

	// SnapshotFilters configures when the application captures and prunes
	// state-sync snapshots. Nil disables snapshotting entirely.
	SnapshotFilters []snapshot.Filter

	Logger cmtlog.Logger
}

// Run opens the node's database, constructs the application, starts the
// ABCI socket server, and blocks until SIGTERM or SIGINT, mirroring the
// teacher's vstoreCmd.Run closure generalized away from a single
// hardcoded application.
func Run(cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	}

	db, dbPath, teardown, err := openDatabase("corestate", cfg.HomeDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer teardown()
	logger.Info("using database", "path", dbPath)

	tree := merkle.NewTree(db, logger)

	var snapMgr *snapshot.Manager
	if len(cfg.SnapshotFilters) > 0 {
		snapMgr = snapshot.NewManager(cfg.SnapshotFilters...)
	}

	stopHeight, err := stopHeightFromEnv()
	if err != nil {
		return err
	}

	app := abci.NewApplication(tree, abci.Config{
		ChainID:     cfg.ChainID,
		FeeSymbol:   cfg.FeeSymbol,
		Factory:     cfg.Factory,
		SnapshotMgr: snapMgr,
		Logger:      logger,
		StopHeight:  stopHeight,
	})

	server := abciserver.NewSocketServer(cfg.SocketAddr, app)
	server.SetLogger(logger)

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting socket server: %w", err)
	}
	defer server.Stop()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	return nil
}

// stopHeightFromEnv reads STOP_HEIGHT, returning nil if it is unset. An
// operator sets it, restarts the node, and the running Commit halts the
// process once that height is reached.
func stopHeightFromEnv() (*uint64, error) {
	raw, ok := os.LookupEnv(stopHeightEnv)
	if !ok || raw == "" {
		return nil, nil
	}
	height, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", stopHeightEnv, raw, err)
	}
	return &height, nil
}

// openDatabase creates a new leveldb database in home's leveldb
// subdirectory. The returned teardown function closes it; callers should
// defer it immediately.
func openDatabase(name, home string) (cmtdb.DB, string, func(), error) {
	dbPath := filepath.Join(home, "leveldb")
	dbType := cmtdb.BackendType("goleveldb")

	db, err := cmtdb.NewDB(name, dbType, dbPath)
	if err != nil {
		return nil, dbPath, func() {}, err
	}

	return db, dbPath, func() {
		if err := db.Close(); err != nil {
			cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stderr)).Error("error closing database", "err", err)
		}
	}, nil
}
