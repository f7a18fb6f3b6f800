package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/chord"
	"github.com/jsphweid/scoretime/file"
	"github.com/jsphweid/scoretime/midi"
	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/util"
	"github.com/spf13/cobra"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects a score, snapshot or midi file",
	Long:  `Prints the timeline of a score file, a .dat snapshot, or the note starts of a .mid file.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		s, err := midi.ReadMidiFile(path)
		if err != nil {
			panic(err)
		}
		fmt.Println(headingStyle.Render("Note starts"))
		for _, n := range midi.NoteStarts(s) {
			fmt.Printf("track %v key %v at %v\n", n.Track, n.Key, n.At)
		}
	case ".dat":
		printTimeline(util.ReadBinaryOrPanic[model.Timeline](path))
	default:
		score, err := file.LoadScore(path)
		if err != nil {
			panic(err)
		}
		printTimeline(builder.Build(score).Timeline())
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func printTimeline(tl model.Timeline) {
	if tl.Title != "" {
		fmt.Println(headingStyle.Render(tl.Title))
	}
	fmt.Printf("%v events, %v\n", humanize.Comma(int64(len(tl.Events))), durafmt.Parse(seconds(tl.Duration)))

	fmt.Println(headingStyle.Render("Events"))
	for i := range tl.Events {
		e := &tl.Events[i]
		fmt.Printf("tick %6d  measure %3d  %9.3fs  on %-14s off %d\n",
			e.Tick, e.MeasureIndex+1, e.WallTime, chord.OnsetKey(e), len(e.OffNotes))
	}

	if len(tl.Attributes) > 0 {
		fmt.Println(headingStyle.Render("Attributes"))
		for _, a := range tl.Attributes {
			t := a.Time()
			fmt.Printf("tick %6d  part %d  divisions %d  time %d/%d\n", a.Tick, a.Part, a.Divisions(), t.Beats, t.BeatType)
		}
	}
	if len(tl.Tempos) > 0 {
		fmt.Println(headingStyle.Render("Tempos"))
		for _, t := range tl.Tempos {
			fmt.Printf("tick %6d  %v bpm\n", t.Tick, t.Value)
		}
	}
	if len(tl.Loops) > 0 {
		fmt.Println(headingStyle.Render("Loops"))
		for _, l := range tl.Loops {
			fmt.Printf("[%d, %d) x%d\n", l.Begin, l.End, l.Count)
		}
	}
	if len(tl.Endings) > 0 {
		fmt.Println(headingStyle.Render("Endings"))
		for _, e := range tl.Endings {
			fmt.Printf("[%d, %d) %v\n", e.Begin, e.End, e.Numbers)
		}
	}
	if len(tl.Diagnostics) > 0 {
		fmt.Println(headingStyle.Render("Diagnostics"))
		for _, d := range tl.Diagnostics {
			fmt.Printf("%s at tick %d (part %d, measure %d): %s\n", d.Kind, d.Tick, d.Part, d.Measure+1, d.Message)
		}
	}
}
