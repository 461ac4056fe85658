package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configFile    string
	preset        string
	dataDir       string
	contentFile   string
	logLevel      string
	logFile       string
	particleCount int
	paletteFlag   string
	tickMs        int
	seed          uint64
	theme         string
	revealStepMs  int
	// live
	gifPath string
	// export
	htmlOut     string
	svgOut      string
	exportGIF   string
	trailsOut   string
	exportTicks int
	frames      int
	pxWidth     int
	pxHeight    int
	// serve
	listen string
	// snapshot
	snapshotTicks int
	label         string
	runs          int
	// export-csv
	csvOut string
)

// main runs the savibe CLI. With no subcommand it opens the interactive
// landing page.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "savibe",
		Short:         "SavibeShop landing page with an animated particle field",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPage,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&dataDir, "data", "", "snapshot directory (default .savibe)")
	pf.StringVar(&contentFile, "content", "", "page content file (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file path")
	pf.IntVar(&particleCount, "particles", 0, "number of particles")
	pf.StringVar(&paletteFlag, "palette", "", "comma separated particle colors")
	pf.IntVar(&tickMs, "tick-ms", 0, "milliseconds between field updates")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&theme, "theme", "", "color theme")
	pf.IntVar(&revealStepMs, "reveal-step-ms", 0, "uniform reveal stagger (0 = content delays)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "show the particle field alone",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", "savibe.gif", "where the g key saves recordings")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the page as HTML and the field as SVG or GIF",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&htmlOut, "html", "", "static HTML page output")
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "SVG field snapshot output")
	exportCmd.Flags().StringVar(&exportGIF, "gif", "", "animated GIF output")
	exportCmd.Flags().StringVar(&trailsOut, "trails", "", "SVG particle trails output")
	exportCmd.Flags().IntVar(&exportTicks, "ticks", 0, "advance the field before exporting")
	exportCmd.Flags().IntVar(&frames, "frames", 60, "frames for --gif and --trails")
	exportCmd.Flags().IntVar(&pxWidth, "width", 640, "image width")
	exportCmd.Flags().IntVar(&pxHeight, "height", 360, "image height")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve a live preview of the page",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (default 127.0.0.1:8080)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance a field headlessly and store it",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotTicks, "ticks", 100, "ticks to run before saving")
	snapshotCmd.Flags().StringVar(&label, "label", "field", "snapshot label")
	snapshotCmd.Flags().IntVar(&runs, "runs", 1, "independent seeds to run in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print snapshot metadata and position histograms",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [snapshot_id]",
		Short: "export snapshot particles to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print the resolved configuration, or write it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showConfig,
	}

	rootCmd.AddCommand(liveCmd, exportCmd, serveCmd, snapshotCmd, listCmd, showCmd, exportCSVCmd, presetsCmd, configCmd)
	return rootCmd
}
