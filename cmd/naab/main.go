// Command naab is the NAAb interpreter's command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/b-macker/NAAb-sub013/cmd/naab/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil && err.Error() != "" {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cmd.ExitCode(err))
}
