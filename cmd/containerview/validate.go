package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-uolib/client/pkg/config"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <profile.yaml>...",
		Short: "Check profiles against the profile schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err == nil {
					err = config.ValidateProfile(raw)
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d profile(s) failed validation", failed)
			}
			return nil
		},
	}
}
