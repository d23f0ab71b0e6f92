package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/chromakey/internal/payload"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [input_b64_file] [output_png_path]",
	Short: "Decode a base64 (or data URL) PNG payload to a file",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runReconstruct,
}

func init() {
	reconstructCmd.Flags().StringP("input", "i", "", "Input file holding the base64 payload")
	reconstructCmd.Flags().StringP("output", "o", "", "Output file for the decoded bytes")
	rootCmd.AddCommand(reconstructCmd)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	// Positional arguments fill whatever the flags left empty.
	rest := args
	if inputPath == "" && len(rest) > 0 {
		inputPath, rest = rest[0], rest[1:]
	}
	if outputPath == "" && len(rest) > 0 {
		outputPath, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument %q", rest[0])
	}
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("usage: %s", cmd.UseLine())
	}

	n, err := payload.Reconstruct(inputPath, outputPath)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"input": inputPath, "bytes": n}).Debug("payload decoded")
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully saved to %s\n", outputPath)
	return nil
}
