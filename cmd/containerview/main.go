package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "containerview",
		Short: "Terminal viewer for container windows",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(runCmd())
	root.AddCommand(layoutCmd())
	root.AddCommand(positionsCmd())
	root.AddCommand(validateCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
