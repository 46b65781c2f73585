package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/MrSnakeDoc/navdir/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s navdir: %v\n", color.New(color.FgRed).Sprint("❌"), err)
		os.Exit(1)
	}
}
