package driver

import (
	"io"
	"os"
	"path/filepath"

	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// Driver supervises one consensus-engine child process. Its builder methods
// mirror the engine's own CLI flags; Start spawns the process, Wait blocks
// until it exits, and Stop kills it.
type Driver struct {
	binaryPath string
	home       string
	proc       *process
	logger     cmtlog.Logger
	genesis    []byte
	edits      configEdits
}

// New creates a Driver that will run binaryPath with --home home. The home
// directory is created if it doesn't already exist.
func New(binaryPath, home string, logger cmtlog.Logger) (*Driver, error) {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, err
	}
	d := &Driver{
		binaryPath: binaryPath,
		home:       home,
		proc:       newProcess(binaryPath, "start", "--home", home),
		logger:     logger,
	}
	return d, nil
}

// LogLevel sets the engine's --log_level flag.
func (d *Driver) LogLevel(level string) *Driver {
	d.proc.setArg("--log_level", level)
	return d
}

// Trace enables the engine's --trace flag.
func (d *Driver) Trace() *Driver {
	d.proc.setArg("--trace")
	return d
}

// Moniker sets the node's --moniker flag.
func (d *Driver) Moniker(moniker string) *Driver {
	d.proc.setArg("--moniker", moniker)
	return d
}

// P2PLaddr sets the --p2p.laddr flag.
func (d *Driver) P2PLaddr(addr string) *Driver {
	d.proc.setArg("--p2p.laddr", addr)
	return d
}

// PersistentPeers sets the --p2p.persistent_peers flag from a
// comma-joined peer list (ID@host:port entries).
func (d *Driver) PersistentPeers(peers []string) *Driver {
	joined := joinComma(peers)
	d.proc.setArg("--p2p.persistent_peers", joined)
	return d
}

// RPCLaddr sets the --rpc.laddr flag.
func (d *Driver) RPCLaddr(addr string) *Driver {
	d.proc.setArg("--rpc.laddr", addr)
	return d
}

// ProxyApp sets the --proxy_app flag: the ABCI socket address the engine
// dials back to reach the application.
func (d *Driver) ProxyApp(addr string) *Driver {
	d.proc.setArg("--proxy_app", addr)
	return d
}

// KeepAddrBook preserves the address book across an unsafe_reset_all.
func (d *Driver) KeepAddrBook() *Driver {
	d.proc.setArg("--keep_addr_book")
	return d
}

// WithGenesis stages genesis bytes to be written to config/genesis.json the
// next time Start runs.
func (d *Driver) WithGenesis(genesis []byte) *Driver {
	d.genesis = genesis
	return d
}

// Stdout routes the child process's stdout to w.
func (d *Driver) Stdout(w io.Writer) *Driver {
	d.proc.cmd.Stdout = w
	return d
}

// Stderr routes the child process's stderr to w.
func (d *Driver) Stderr(w io.Writer) *Driver {
	d.proc.cmd.Stderr = w
	return d
}

// Start applies any staged genesis file and config.toml edits, then spawns
// the child process.
func (d *Driver) Start() error {
	if err := d.applyGenesis(); err != nil {
		return err
	}
	if err := d.applyConfigEdits(); err != nil {
		return err
	}
	d.logger.Info("starting consensus driver", "binary", d.binaryPath, "home", d.home)
	return d.proc.spawn()
}

// Wait blocks until the child process exits.
func (d *Driver) Wait() error {
	return d.proc.wait()
}

// Stop kills the child process.
func (d *Driver) Stop() error {
	d.logger.Info("stopping consensus driver")
	return d.proc.kill()
}

func (d *Driver) applyGenesis() error {
	if d.genesis == nil {
		return nil
	}
	target := filepath.Join(d.home, "config", "genesis.json")
	return os.WriteFile(target, d.genesis, 0o644)
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += item
	}
	return out
}
