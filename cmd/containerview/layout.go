package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-uolib/client/pkg/client/modules/gumps"
)

func layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <file>",
		Short: "List the windows stored in a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serials, err := gumps.ReadLayout(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d window(s)\n", len(serials))
			for _, s := range serials {
				fmt.Fprintf(out, "  %#08x\n", s)
			}
			return nil
		},
	}
}
