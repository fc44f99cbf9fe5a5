package main

import (
	"os"

	"github.com/mrops-br/entity-storefront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
