package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scoretime",
	Short: "Score timelines",
	Long:  `Turns parsed score documents into tick and wall-clock event timelines.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
