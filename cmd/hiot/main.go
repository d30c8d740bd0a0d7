// Command hiot runs the healthcare IoT synthetic workloads.
package main

import (
	"context"
	"os"

	"github.com/roach88/hiot/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
