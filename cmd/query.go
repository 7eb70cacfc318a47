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
	"github.com/statesmith/corestate/app"
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/query"
)

// Used for flags
var queryAddress string

func init() {
	queryCmd.PersistentFlags().StringVar(
		&queryAddress,
		"address",
		"",
		"Account address to query, hex-encoded",
	)
	queryCmd.PersistentFlags().BoolVarP(
		&printAsJSON,
		"json",
		"j",
		false,
		"Display the result in a JSON format",
	)
	queryCmd.PersistentFlags().StringVar(
		&rpcAddr,
		"rpc",
		"http://localhost:26657",
		"RPC address of a running corestate node",
	)

	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query an account's balance",
	Long:  `Query a running corestate node for an account's balance by address.`,

	Example: `  corestate query --address XXX`,

	Run: func(cmd *cobra.Command, args []string) {
		if len(queryAddress) == 0 {
			log.Fatalf("--address is required")
		}
		addr, err := coins.AddressFromHex(queryAddress)
		if err != nil {
			log.Fatalf("could not parse --address: %v", err)
		}

		logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
		cli, err := rpc.New(rpcAddr, "/websocket")
		if err != nil {
			log.Fatalf("could not connect to RPC server: %v", err)
		}
		cli.SetLogger(logger)

		data := query.Encode(app.BalanceQuery(addr))
		response, err := cli.ABCIQuery(cmd.Context(), "/balance", data)
		if err != nil {
			log.Fatalf("error occurred on query: %v", err)
		}
		if response.Response.Code != abci.CodeTypeOK {
			log.Fatalf("query failed: (%d) %s", response.Response.Code, response.Response.Log)
		}

		balance, err := app.DecodeBalance(response.Response.Value)
		if err != nil {
			log.Fatalf("could not parse balance: %v", err)
		}

		if printAsJSON {
			out, _ := json.MarshalIndent(struct {
				Address string
				Balance uint64
			}{addr.String(), uint64(balance)}, "", "  ")
			fmt.Println(string(out))
			return
		}

		fmt.Printf("Address: %s\n", addr.String())
		fmt.Printf("Balance: %d\n", balance)
	},
}
