package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func searchCommand() *cobra.Command {
	var node string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search for songs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.Search(ctx, node, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results")

	return cmd
}
