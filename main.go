// Command linetmpl classifies and renders templated text line by line.
package main

import (
	"os"

	"github.com/randalmurphal/linetmpl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
