package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/chromakey/internal/pipeline"
)

var stripCmd = &cobra.Command{
	Use:   "strip",
	Short: "Make a near-white or near-black PNG background transparent",
	RunE:  runStrip,
}

func init() {
	stripCmd.Flags().StringP("input", "i", "", "Input PNG file")
	stripCmd.Flags().StringP("output", "o", "", "Output PNG file (defaults to the input, in place)")
	modeVar(stripCmd.Flags(), "mode", "Background to remove (light, dark)")
	stripCmd.Flags().Int("threshold", -1, "Match sensitivity (0-255)")
	stripCmd.MarkFlagRequired("input")
	stripCmd.MarkFlagRequired("mode")
	stripCmd.MarkFlagRequired("threshold")
	rootCmd.AddCommand(stripCmd)
}

func runStrip(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	threshold, _ := cmd.Flags().GetInt("threshold")

	mode, err := getMode(cmd.Flags(), "mode")
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = inputPath
	}

	opts := pipeline.Options{
		Mode:      mode,
		Threshold: threshold,
	}

	logrus.WithFields(logrus.Fields{
		"input":     inputPath,
		"output":    outputPath,
		"mode":      mode.String(),
		"threshold": threshold,
	}).Debug("stripping background")

	result, err := pipeline.ProcessFile(cmd.Context(), inputPath, outputPath, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %s -> %s (mode: %s, threshold: %d)\n", inputPath, outputPath, mode, threshold)
	fmt.Fprintf(out, "Keyed %d of %d pixels (%dx%d)\n", result.Keyed, result.Width*result.Height, result.Width, result.Height)
	return nil
}
