package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/file"
	"github.com/jsphweid/scoretime/midi"
	"github.com/jsphweid/scoretime/sequence"
	"github.com/jsphweid/scoretime/util"
	"github.com/spf13/cobra"
)

var buildMidi bool
var buildClean bool

func init() {
	buildCmd.Flags().BoolVar(&buildMidi, "midi", false, "also write a .mid file per score")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "recreate the output dir first")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [path] [max]",
	Short: "Builds timeline snapshots",
	Long:  `Builds a timeline for every score file under path (or SCORE_PATH) and writes gob snapshots to the output dir.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			path = constants.GetScoreDir()
		}

		var maxNum int
		if len(args) == 2 {
			arg2, err := strconv.Atoi(args[1])
			if err != nil {
				panic(err)
			}
			maxNum = arg2
		}

		Build(path, maxNum)
	},
}

func scorePaths(path string, maxNum int) []string {
	info, err := os.Stat(path)
	if err != nil {
		panic("Could not stat " + path + ": " + err.Error())
	}
	if !info.IsDir() {
		return []string{path}
	}
	paths, err := file.GatherAllScorePaths(path, maxNum)
	if err != nil {
		panic(err)
	}
	return paths
}

func logDiagnostics(name string, seq *sequence.EventSequence) {
	for _, d := range seq.Diagnostics() {
		log.Printf("%s: %s: %s (part %d, measure %d, tick %d)", name, d.Kind, d.Message, d.Part, d.Measure, d.Tick)
	}
}

// Build writes one snapshot per score and returns how many were written.
func Build(path string, maxNum int) int {
	if buildClean {
		util.RecreateOutputDir()
	} else {
		util.EnsureOutputDir()
	}

	paths := scorePaths(path, maxNum)
	var written int
	for i, p := range paths {
		fmt.Printf("Processing %v of %v score files\n", i+1, len(paths))
		score, err := file.LoadScore(p)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", p, err)
			continue
		}

		seq := builder.Build(score)
		logDiagnostics(p, seq)

		name := file.SnapshotName(p)
		util.CreateBinary(filepath.Join(constants.GetOutDir(), name), seq.Timeline())
		written++

		if buildMidi {
			midiPath := filepath.Join(constants.GetOutDir(), strings.TrimSuffix(name, ".dat")+".mid")
			if err := midi.WriteFile(midi.Export(seq), midiPath); err != nil {
				fmt.Printf("Could not write midi for %v: %v\n", p, err)
			}
		}
	}
	return written
}
