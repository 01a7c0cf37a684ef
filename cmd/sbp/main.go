package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/open-cli-collective/statblock-cli/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		red := color.New(color.FgRed)
		_, _ = red.Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
