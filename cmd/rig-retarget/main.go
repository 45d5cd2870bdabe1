// Command rig-retarget retargets Mixamo animation onto Rigify rigs.
package main

import (
	"os"

	"rig-retarget/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
