package cmd

import (
	"fmt"

	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/file"
	"github.com/jsphweid/scoretime/midi"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var exportLoop int

func init() {
	exportCmd.Flags().IntVar(&exportLoop, "loop", -1, "only export the loop with this index")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <score> <out.mid>",
	Short: "Exports a score timeline as midi",
	Long:  `Exports the resolved timeline of a score, or one of its loops, as a Standard MIDI File.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return export(args[0], args[1], exportLoop)
	},
}

func export(scorePath, outPath string, loop int) error {
	score, err := file.LoadScore(scorePath)
	if err != nil {
		return err
	}
	seq := builder.Build(score)
	logDiagnostics(scorePath, seq)

	var s *smf.SMF
	if loop >= 0 {
		loops := seq.Loops()
		if loop >= len(loops) {
			return fmt.Errorf("score has %d loops, no loop %d", len(loops), loop)
		}
		s = midi.ExportRange(seq, loops[loop].Begin, loops[loop].End)
	} else {
		s = midi.Export(seq)
	}
	return midi.WriteFile(s, outPath)
}
