package main

import "github.com/statesmith/corestate/cmd"

func main() {
	cmd.Execute()
}
