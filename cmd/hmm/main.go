// Command hmm decodes ice cream observations into HOT/COLD weather and
// serves the same model over gRPC.
package main

import (
	"os"

	"github.com/SyedDaiam9101/hmm-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
