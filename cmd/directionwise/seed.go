package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/db"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the sample career catalog",
		Long:  "Creates the tables if needed and inserts the sample careers, skills and 12-month trend series when the catalog is empty. Running it again is a no-op.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := db.Open(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			seeded, err := store.SeedIfEmpty(ctx)
			if err != nil {
				return err
			}
			n, err := store.CountCareers(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if seeded {
				fmt.Fprintf(out, "Seeded %d careers\n", n)
			} else {
				fmt.Fprintf(out, "Catalog already has %d careers, nothing to do\n", n)
			}
			return nil
		},
	}
}
