package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/scoretime/builder"
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/db"
	"github.com/jsphweid/scoretime/file"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(lookupCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <score>...",
	Short: "Publishes timeline summaries",
	Long:  `Builds each score and stores its timeline summary in DynamoDB.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for i, path := range args {
			fmt.Printf("Publishing %v of %v scores\n", i+1, len(args))
			if err := publish(path); err != nil {
				fmt.Printf("Skipping %v because: %v\n", path, err)
			}
		}
	},
}

func summaryName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func publish(path string) error {
	score, err := file.LoadScore(path)
	if err != nil {
		return err
	}
	seq := builder.Build(score)
	logDiagnostics(path, seq)

	summary := seq.Summary(summaryName(path))
	summary.Revision = uuid.New().String()
	return db.PutTimelineSummary(summary)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>...",
	Short: "Fetches published timeline summaries",
	Long:  `Fetches published timeline summaries by score name.`,
	Args:  cobra.RangeArgs(1, constants.MaxBatchGet),
	Run: func(cmd *cobra.Command, args []string) {
		summaries, err := db.GetTimelineSummaries(args)
		if err != nil {
			panic(err)
		}
		for _, name := range args {
			s, ok := summaries[name]
			if !ok {
				fmt.Printf("%v: not published\n", name)
				continue
			}
			fmt.Printf("%v: %v events, %v loops, %.2fs (revision %v)\n", name, s.NumEvents, s.NumLoops, s.Duration, s.Revision)
		}
	},
}
