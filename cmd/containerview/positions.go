package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-uolib/client/pkg/storage"
)

func positionsCmd() *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Inspect remembered backpack window positions",
	}
	cmd.PersistentFlags().StringVar(&db, "db", "containers.db", "SQLite position store")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every stored position",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.OpenSQLite(db)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.Records()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No positions stored.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SERIAL\tX\tY\tUPDATED")
			for _, r := range records {
				fmt.Fprintf(tw, "%#08x\t%d\t%d\t%s\n", r.Serial, r.X, r.Y, r.UpdatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every stored position",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := storage.OpenSQLite(db)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d position(s).\n", n)
			return nil
		},
	})
	return cmd
}
