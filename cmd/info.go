package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	rpc "github.com/cometbft/cometbft/rpc/client/http"

	"github.com/spf13/cobra"

	"github.com/statesmith/corestate/abci"
)

// Used for flags
var printAsJSON bool

var rpcAddr string

func init() {
	infoCmd.PersistentFlags().BoolVarP(
		&printAsJSON,
		"json",
		"j",
		false,
		"Display the information in a JSON format.",
	)
	infoCmd.PersistentFlags().StringVar(
		&rpcAddr,
		"rpc",
		"http://localhost:26657",
		"RPC address of a running corestate node",
	)

	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the current node's ABCI information",
	Long: `Print the current node's ABCI information including:

  - the ABCI and application protocol versions ; and
  - the latest committed block height ; and
  - the latest application merkle root hash.

This is the information needed to cross-check the integrity of two
corestate node instances claiming to be at the same height.
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
		cli, err := rpc.New(rpcAddr, "/websocket")
		if err != nil {
			log.Fatalf("could not connect to RPC server: %v", err)
		}
		cli.SetLogger(logger)

		response, err := cli.ABCIInfo(cmd.Context())
		if err != nil {
			log.Fatalf("could not retrieve ABCI information: %v", err)
		}

		appInfo := struct {
			ABCIVersion string
			AppVersion  uint64
			LastHeight  int64
			AppHash     string
		}{
			response.Response.Version,
			response.Response.AppVersion,
			response.Response.LastBlockHeight,
			fmt.Sprintf("%x", response.Response.LastBlockAppHash),
		}

		if printAsJSON {
			out, _ := json.MarshalIndent(appInfo, "", "  ")
			fmt.Println(string(out))
			return
		}

		fmt.Printf("corestate (app v%d) - ABCI:\n", abci.AppVersion)
		fmt.Printf("  ABCI Version: %s\n", appInfo.ABCIVersion)
		fmt.Printf("   App Version: %d\n", appInfo.AppVersion)
		fmt.Printf("   Last Height: %d\n", appInfo.LastHeight)
		fmt.Printf("      App Hash: %s\n", appInfo.AppHash)
	},
}
