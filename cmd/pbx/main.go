package main

import (
	"os"

	"github.com/bnema/pabx-entitlements/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
