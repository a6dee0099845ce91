// LipidMatch - rule-driven lipid MS/MS annotation tool
package main

import (
	"fmt"
	"os"

	"github.com/mzkit/lipidmatch/cmd/lipidmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
