// Command paracl runs ParaCL programs.
package main

import (
	"os"

	"github.com/paracl-go/paracl/cmd/paracl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
