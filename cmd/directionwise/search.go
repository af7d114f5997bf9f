package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/similarity"
)

func newSearchCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find catalog careers similar to free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 {
				return fmt.Errorf("-k must be at least 1")
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			query := strings.Join(args, " ")
			hits, err := similarity.NewEngine(store).Search(cmd.Context(), query, k)
			if err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintSearchResults(query, hits)
				return nil
			}
			return writeJSONOut(cmd.OutOrStdout(), map[string]any{"query": query, "results": hits})
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 5, "Number of results")
	return cmd
}
