// BuildEst — room-based residential build cost estimator
//
// Generates a bill of quantities from room counts and per-room fixture
// templates, rolls costs up by construction phase, and projects a
// multi-year funding schedule under inflation and partial upfront funding.
//
// Build:
//
//	go build -o buildest ./cmd/buildest
package main

import (
	"os"

	"github.com/piwi3910/BuildEst/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
