package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-uolib/client/pkg/client"
	"github.com/go-uolib/client/pkg/helpers"
)

func runCmd() *cobra.Command {
	var (
		opts     helpers.Options
		headless bool
		duration time.Duration
		tickRate time.Duration
		script   []string
		file     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo world and show container windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Interactive = !headless
			c, closer, err := helpers.NewClient(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			lines := script
			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				lines = append(splitLines(string(raw)), lines...)
			}
			for _, line := range lines {
				if err := c.Exec(line); err != nil {
					return fmt.Errorf("%q: %w", line, err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if headless && duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return c.Run(ctx, tickRate)
		},
	}
	helpers.RegisterFlags(cmd.Flags(), &opts)
	cmd.Flags().BoolVar(&headless, "headless", false, "run the frame loop without a terminal UI")
	cmd.Flags().DurationVar(&duration, "for", 0, "stop a headless run after this long")
	cmd.Flags().DurationVar(&tickRate, "tick", client.DefaultTickRate, "frame interval")
	cmd.Flags().StringArrayVarP(&script, "exec", "e", nil, "console command to run before the loop starts (repeatable)")
	cmd.Flags().StringVar(&file, "script", "", "file of console commands to run first, one per line")
	return cmd
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}
