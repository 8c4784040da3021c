package main

import (
	"context"

	"github.com/spf13/cobra"
)

func stopCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Mark playback stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.Stop(ctx, node)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")

	return cmd
}
