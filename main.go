// Package main is the entry point of the assess CLI.
package main

import (
	"github.com/nfi-health/assess/cmd"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/persist"
)

func main() {
	defer persist.CloseStores()

	cmd.SetStoreManager(persist.Manager)
	if err := cmd.Execute(); err != nil {
		persist.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
