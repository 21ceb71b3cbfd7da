// Command steplens shows the steps of Tekton TaskRuns in declared order.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/steplens/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
