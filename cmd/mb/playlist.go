package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mikey-austin/music_bridge/pkg/mb"
)

func playlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Manage the playlist",
	}

	cmd.AddCommand(playlistAddCommand())
	cmd.AddCommand(playlistShowCommand())
	cmd.AddCommand(playlistClearCommand())
	cmd.AddCommand(playlistNextCommand())
	cmd.AddCommand(playlistPrevCommand())

	return cmd
}

func playlistAddCommand() *cobra.Command {
	var (
		node     string
		songName string
		artist   string
		url      string
	)

	cmd := &cobra.Command{
		Use:   "add [song-id]",
		Short: "Add a song to the playlist",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			songID := ""
			if len(args) == 1 {
				songID = args[0]
			}
			result, err := app.service.PlaylistAdd(ctx, node, mb.PlaylistAddBody{
				SongID:   songID,
				SongName: songName,
				Artist:   artist,
				URL:      url,
			})
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")
	cmd.Flags().StringVar(&songName, "name", "", "song name")
	cmd.Flags().StringVar(&artist, "artist", "", "artist name")
	cmd.Flags().StringVar(&url, "url", "", "direct song url")

	return cmd
}

func playlistShowCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the playlist and playback status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.PlaylistGet(ctx, node)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")

	return cmd
}

func playlistClearCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the playlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.PlaylistClear(ctx, node)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")

	return cmd
}

func playlistNextCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Move to the next song",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.PlaylistNext(ctx, node)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")

	return cmd
}

func playlistPrevCommand() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "prev",
		Short: "Move to the previous song",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			result, err := app.service.PlaylistPrev(ctx, node)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")

	return cmd
}
