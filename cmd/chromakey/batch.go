package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/chromakey/internal/batch"
	"github.com/davesmith10/chromakey/internal/manifest"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Strip backgrounds for every image listed in a YAML manifest",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringP("config", "c", "", "Manifest file (YAML)")
	batchCmd.Flags().IntP("jobs", "j", 1, "Number of images processed concurrently")
	batchCmd.Flags().Bool("skip-missing", false, "Warn and continue when an input or source file is missing")
	batchCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	jobs, _ := cmd.Flags().GetInt("jobs")
	skipMissing, _ := cmd.Flags().GetBool("skip-missing")

	m, err := manifest.Load(configPath)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Jobs:        jobs,
		SkipMissing: skipMissing,
		Logger:      logrus.WithField("manifest", configPath),
	}
	report, err := runner.Run(cmd.Context(), m)
	if report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), report.Table())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d, skipped %d of %d entries\n",
		report.Count(batch.StatusProcessed), report.Count(batch.StatusSkipped), len(report.Outcomes))
	return nil
}
