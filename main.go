// The main package for the ogtool executable.
package main

import (
	"github.com/Mario263/OG-Tool/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
