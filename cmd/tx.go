package cmd

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	rpc "github.com/cometbft/cometbft/rpc/client/http"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/statesmith/corestate/abci"
	"github.com/statesmith/corestate/app"
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/identity"
	"github.com/statesmith/corestate/plugins"
)

// Used for flags
var (
	transferTo     string
	transferAmount uint64
	transferNonce  uint64
	alsoBroadcast  bool
)

func init() {
	txCmd.AddCommand(txSignCmd)
	rootCmd.AddCommand(txCmd)

	txSignCmd.PersistentFlags().StringVar(
		&transferTo,
		"to",
		"",
		"Recipient address, hex-encoded",
	)
	txSignCmd.PersistentFlags().Uint64Var(
		&transferAmount,
		"amount",
		0,
		"Amount to transfer",
	)
	txSignCmd.PersistentFlags().Uint64Var(
		&transferNonce,
		"nonce",
		1,
		"Signer's next expected nonce",
	)
	txSignCmd.PersistentFlags().BoolVarP(
		&alsoBroadcast,
		"commit",
		"c",
		false,
		"Broadcast and commit the transaction",
	)
}

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Build and send corestate transactions",
}

var txSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a Transfer call",
	Long:  `Sign a Transfer call using the node's identity file, optionally broadcasting it.`,
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

		id := identity.New(idFile, pw)
		priv, err := id.PrivKey()
		if err != nil {
			log.Fatalf("could not open identity: %v", err)
		}

		if len(transferTo) == 0 {
			log.Fatalf("--to is required")
		}
		to, err := coins.AddressFromHex(transferTo)
		if err != nil {
			log.Fatalf("could not parse --to address: %v", err)
		}

		innerCall := app.TransferCall(to, coins.NewAmount(transferAmount))
		nonce := transferNonce
		env := plugins.NonceEnvelope{Nonce: &nonce, InnerCall: innerCall}

		digest := signedDigest(chainID, env.Bytes())
		sig, err := priv.Sign(digest[:])
		if err != nil {
			log.Fatalf("could not sign transaction: %v", err)
		}

		tx := plugins.SignedTx{
			SigType:   plugins.SigTypeNative,
			PubKey:    priv.PubKey().Bytes(),
			Signature: sig,
			CallBytes: env.Bytes(),
		}
		txbz := tx.Bytes()

		if !alsoBroadcast {
			fmt.Println("Signed transaction bytes:")
			fmt.Printf("0x%x\n", txbz)
			return
		}

		logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
		cli, err := rpc.New(rpcAddr, "/websocket")
		if err != nil {
			log.Fatalf("could not connect to RPC server: %v", err)
		}
		cli.SetLogger(logger)

		response, err := cli.BroadcastTxCommit(cmd.Context(), txbz)
		if err != nil {
			log.Fatalf("could not broadcast transaction: %v", err)
		}

		if response.TxResult.Code == abci.CodeTypeOK {
			fmt.Println("Transaction successfully broadcast!")
			fmt.Printf("Transaction Hash: %x\n", response.Hash)
			fmt.Printf("Committed Height: %d\n", response.Height)
			return
		}

		fmt.Println("An error occurred trying to broadcast the transaction.")
		resCheckTx, _ := json.MarshalIndent(response.CheckTx, "", "  ")
		resTxResult, _ := json.MarshalIndent(response.TxResult, "", "  ")
		fmt.Println("CheckTx:")
		fmt.Println(string(resCheckTx))
		fmt.Println("TxResult:")
		fmt.Println(string(resTxResult))
	},
}

// signedDigest mirrors the signer plugin's own sha256(chain_id || call_bytes)
// construction, unexported there since it's an internal verification detail;
// the CLI reproduces it to produce a signature the running stack will accept.
func signedDigest(chainID string, callBytes []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(chainID))
	h.Write(callBytes)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
