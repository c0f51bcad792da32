// Command bjpeginfo decodes a baseline JPEG file and reports its
// dimensions and comment, optionally dumping the decoded image as a PPM.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/halvardk/bjpeg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bjpeginfo",
		Short: "Inspect and decode baseline JPEG files",
	}
	root.AddCommand(newDecodeCmd())
	return root
}

func newDecodeCmd() *cobra.Command {
	var ppmPath string
	var verbose bool
	var logFile string

	cmd := &cobra.Command{
		Use:   "decode <path>",
		Short: "Decode a baseline JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args[0], ppmPath, verbose, logFile)
		},
	}
	cmd.Flags().StringVar(&ppmPath, "ppm", "", "write the decoded image as a PPM file to this path")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every marker and MCU the decoder processes")
	cmd.Flags().StringVar(&logFile, "log-file", "", "route logs through a rotating file instead of stderr")
	return cmd
}

func runDecode(path, ppmPath string, verbose bool, logFile string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var handler slog.Handler
	if logFile != "" {
		w := &lumberjack.Logger{Filename: logFile, MaxSize: 10, MaxBackups: 3}
		defer w.Close()
		handler = slog.NewJSONHandler(w, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}

	opts := &bjpeg.DecodeOptions{
		Logger:     slog.New(handler),
		LogMarkers: verbose,
		LogMCU:     verbose,
	}

	img, err := bjpeg.Decode(f, opts)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	fmt.Printf("width: %d\n", img.Width())
	fmt.Printf("height: %d\n", img.Height())
	if c := img.GetComment(); c != "" {
		fmt.Printf("comment: %s\n", c)
	}

	if ppmPath != "" {
		out, err := os.Create(ppmPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", ppmPath, err)
		}
		defer out.Close()
		if err := img.WritePPM(out); err != nil {
			return fmt.Errorf("write ppm %s: %w", ppmPath, err)
		}
	}
	return nil
}
