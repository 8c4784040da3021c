package main

import (
	"context"
	"errors"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mikey-austin/music_bridge/pkg/mb"
)

func resolveCommand() *cobra.Command {
	var (
		node     string
		songID   string
		songName string
		artist   string
		url      string
		lyricURL string
		lyric    string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a song to a playable URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			if songID == "" && url == "" {
				return errors.New("either --id or --url is required")
			}

			body := mb.ResolveBody{
				SongID:   songID,
				SongName: songName,
				Artist:   artist,
				URL:      url,
				LyricURL: lyricURL,
				Lyric:    lyric,
			}

			var wg sync.WaitGroup
			if watch && !app.json {
				events, errs, err := app.service.WatchProgress(ctx, node)
				if err != nil {
					return err
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					watchProgress(events, errs, app.quiet)
				}()
			}

			result, err := app.service.Resolve(ctx, node, body)
			cancel()
			wg.Wait()
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "music node selector")
	cmd.Flags().StringVar(&songID, "id", "", "song id from a previous search")
	cmd.Flags().StringVar(&songName, "name", "", "song name")
	cmd.Flags().StringVar(&artist, "artist", "", "artist name")
	cmd.Flags().StringVar(&url, "url", "", "direct song url")
	cmd.Flags().StringVar(&lyricURL, "lyric-url", "", "lyric url")
	cmd.Flags().StringVar(&lyric, "lyric", "", "inline lyric text")
	cmd.Flags().BoolVar(&watch, "watch", false, "show resolution progress events")

	return cmd
}

func watchProgress(events <-chan mb.Event, errs <-chan error, quiet bool) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type != mb.EventResolveProgress || quiet {
				continue
			}
			pterm.Info.Printfln("%3d%% %s", event.Percent, event.Message)
		case _, ok := <-errs:
			if !ok {
				return
			}
		}
	}
}
