package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Summarizes the timeline snapshots in the output dir.`,
	Run: func(cmd *cobra.Command, args []string) {
		printReport(analyzeSnapshots(constants.GetOutDir()))
	},
}

type snapshotsReport struct {
	numFiles      int64
	numBytes      int64
	eventsPerFile []int
	loopsPerFile  []int
	numDiagnostic int
	totalDuration float64
}

func analyzeSnapshots(dir string) snapshotsReport {
	var report snapshotsReport

	files, err := os.ReadDir(dir)
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".dat" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			panic("Could not get file stats")
		}
		report.numFiles += 1
		report.numBytes += info.Size()

		tl := util.ReadBinaryOrPanic[model.Timeline](filepath.Join(dir, f.Name()))
		report.eventsPerFile = append(report.eventsPerFile, len(tl.Events))
		report.loopsPerFile = append(report.loopsPerFile, len(tl.Loops))
		report.numDiagnostic += len(tl.Diagnostics)
		report.totalDuration += tl.Duration
	}
	return report
}

func printReport(report snapshotsReport) {
	fmt.Printf("snapshots: %v (%v)\n", report.numFiles, humanize.Bytes(uint64(report.numBytes)))
	fmt.Printf("events: %v\n", humanize.Comma(int64(util.Sum(report.eventsPerFile))))
	fmt.Printf("loops: %v\n", util.Sum(report.loopsPerFile))
	fmt.Printf("diagnostics: %v\n", report.numDiagnostic)
	fmt.Printf("total playing time: %v\n", durafmt.Parse(seconds(report.totalDuration)))
}
