package output

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/mikey-austin/music_bridge/internal/core"
)

// HumanPrinter prints terminal-friendly output.
type HumanPrinter struct{}

// Print renders human output for the known result types; anything else
// prints a bare ok.
func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case core.NodesResult:
		return printNodes(data)
	case core.SearchResult:
		return printSearch(data)
	case core.ResolveResult:
		return printResolve(data)
	case core.PlaylistResult:
		return printPlaylist(data)
	case core.SongResult:
		return printSong(data)
	case core.StatusResult:
		return printStatus(data)
	case core.RawResult:
		return JSONPrinter{}.Print(data.Data)
	default:
		_, err := fmt.Fprintln(os.Stdout, "ok")
		return err
	}
}

func printNodes(result core.NodesResult) error {
	rows := pterm.TableData{{"NAME", "KIND", "NODE_ID"}}
	for _, node := range result.Nodes {
		rows = append(rows, []string{node.Name, node.Kind, node.NodeID})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printSearch(result core.SearchResult) error {
	if len(result.Reply.Results) == 0 {
		pterm.Info.Printfln("no results for %q", result.Reply.Query)
		return nil
	}

	rows := pterm.TableData{{"#", "NAME", "ARTIST", "ID"}}
	for i, track := range result.Reply.Results {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), track.Name, track.Artist, track.ID})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printResolve(result core.ResolveResult) error {
	reply := result.Reply
	pterm.Success.Printfln("%s - %s", reply.SongName, reply.Artist)
	if _, err := fmt.Fprintf(os.Stdout, "url: %s\n", reply.FinalURL); err != nil {
		return err
	}
	if reply.LyricURL != "" {
		if _, err := fmt.Fprintf(os.Stdout, "lyric: %s\n", reply.LyricURL); err != nil {
			return err
		}
	} else if !reply.HasLyric {
		if _, err := fmt.Fprintln(os.Stdout, "lyric: none"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(os.Stdout, "next: %s\n", reply.NextTool)
	return err
}

func printPlaylist(result core.PlaylistResult) error {
	if len(result.Reply.Songs) == 0 {
		pterm.Info.Println("playlist is empty")
		return nil
	}

	rows := pterm.TableData{{"#", "NAME", "ARTIST", "ID"}}
	for i, song := range result.Reply.Songs {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), song.Name, song.Artist, song.ID})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(os.Stdout, result.Reply.Status)
	return err
}

func printSong(result core.SongResult) error {
	_, err := fmt.Fprintf(os.Stdout, "%s - %s (id: %s)\n", result.Song.Name, result.Song.Artist, result.Song.ID)
	return err
}

func printStatus(result core.StatusResult) error {
	_, err := fmt.Fprintln(os.Stdout, result.Status)
	return err
}
