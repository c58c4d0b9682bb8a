// Command verifiedinput serves, explores and checks forms of verified
// inputs described in a YAML file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
