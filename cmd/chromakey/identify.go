package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/chromakey/internal/chromakey"
	"github.com/davesmith10/chromakey/internal/ir"
	"github.com/davesmith10/chromakey/internal/png"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect PNG info and preview how many pixels a threshold would key",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	modeVar(identifyCmd.Flags(), "mode", "Preview keying for this mode (light, dark)")
	identifyCmd.Flags().Int("threshold", 20, "Threshold used for the preview")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.NewIOError("read", path, err)
	}

	info, err := png.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	buf, err := png.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	transparent := 0
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i).A == 0 {
			transparent++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Color model: %s\n", info.ColorModel)
	fmt.Fprintf(out, "File size:   %d bytes (%.1f KB)\n", len(data), float64(len(data))/1024)
	fmt.Fprintf(out, "Transparent: %d of %d pixels\n", transparent, buf.Len())

	threshold, _ := cmd.Flags().GetInt("threshold")
	modes := []chromakey.Mode{chromakey.Light, chromakey.Dark}
	if cmd.Flags().Changed("mode") {
		m, err := getMode(cmd.Flags(), "mode")
		if err != nil {
			return err
		}
		modes = []chromakey.Mode{m}
	}
	for _, m := range modes {
		xform, err := chromakey.NewTransform(m, threshold)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Keyed (%s, threshold %d): %d pixels\n", m, threshold, xform.Count(buf))
	}
	return nil
}
