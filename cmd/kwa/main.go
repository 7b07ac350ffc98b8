package main

import (
	"os"

	"github.com/kinetiqd/kinetic-workload-allocator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
