package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statesmith/corestate/abci"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of corestate",
	Long:  `Print the version number of corestate.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("corestate (app v%d)\n", abci.AppVersion)
	},
}
