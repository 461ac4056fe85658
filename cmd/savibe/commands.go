package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/config"
	"github.com/savibeshop/savibe/internal/ensemble"
	"github.com/savibeshop/savibe/internal/export"
	"github.com/savibeshop/savibe/internal/metrics"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/storage"
	"github.com/savibeshop/savibe/internal/viz"
	"github.com/savibeshop/savibe/internal/web"
)

const histogramBins = 20

func runPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := terminalLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	page, err := loadContent(cfg)
	if err != nil {
		return err
	}
	th, _ := viz.GetTheme(cfg.Theme)

	model := viz.NewPage(viz.PageOptions{
		Content:         page,
		Animator:        newAnimator(cfg, log),
		Theme:           th,
		RevealStep:      cfg.RevealStep(),
		ScrollThreshold: cfg.ScrollThreshold,
		Palettes:        paletteCycle(cfg),
		Logger:          log,
	})
	return viz.Run(cmd.Context(), model)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := terminalLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	th, _ := viz.GetTheme(cfg.Theme)
	model := viz.NewLive(viz.LiveOptions{
		Animator: newAnimator(cfg, log),
		Theme:    th,
		Palettes: paletteCycle(cfg),
		GIFPath:  gifPath,
		Logger:   log,
	})
	return viz.Run(cmd.Context(), model)
}

func runExport(cmd *cobra.Command, args []string) error {
	if htmlOut == "" && svgOut == "" && exportGIF == "" && trailsOut == "" {
		return errors.New("nothing to export: pass --html, --svg, --gif or --trails")
	}
	if pxWidth <= 0 || pxHeight <= 0 {
		return fmt.Errorf("--width and --height must be positive, got %dx%d", pxWidth, pxHeight)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	th, _ := viz.GetTheme(cfg.Theme)
	bg := string(th.Background)
	out := cmd.OutOrStdout()

	anim := newAnimator(cfg, log)
	field := anim.Step(exportTicks)

	if htmlOut != "" {
		page, err := loadContent(cfg)
		if err != nil {
			return err
		}
		f, err := os.Create(htmlOut)
		if err != nil {
			return err
		}
		data := export.NewPageData(page, field, time.Now().Year())
		data.ScrollThreshold = cfg.ScrollThreshold
		err = export.WriteHTML(f, data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", htmlOut, err)
		}
		fmt.Fprintf(out, "wrote %s\n", htmlOut)
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.FieldToSVG(field, pxWidth, pxHeight, bg)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", svgOut)
	}

	if exportGIF == "" && trailsOut == "" {
		return nil
	}

	ac := anim.Config()
	rec := export.NewGIFRecorder(pxWidth, pxHeight, bg, ac.Palette, ac.Interval)
	trail := make([]particles.Field, 0, frames+1)
	rec.Add(field)
	trail = append(trail, field)
	for i := 1; i < frames; i++ {
		f := anim.Step(1)
		rec.Add(f)
		trail = append(trail, f)
	}

	if exportGIF != "" {
		if err := rec.Save(exportGIF); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s (%d frames)\n", exportGIF, rec.Len())
	}
	if trailsOut != "" {
		if err := os.WriteFile(trailsOut, []byte(export.TrailsToSVG(trail, pxWidth, pxHeight, bg)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", trailsOut)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	page, err := loadContent(cfg)
	if err != nil {
		return err
	}

	hub := web.NewHub()
	anim := newAnimator(cfg, log, animator.WithObserver(hub.Publish))
	if err := anim.Start(cmd.Context()); err != nil {
		return err
	}
	defer anim.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "preview at http://%s\n", cfg.Listen)
	srv := web.New(anim, hub, page, log, web.WithScrollThreshold(cfg.ScrollThreshold))
	return srv.ListenAndServe(cmd.Context(), cfg.Listen)
}

// runSnapshot drives the animator from a fake clock so the stored field is
// reproducible for a given seed.
func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	resolveSeed(cfg)
	if runs > 1 {
		return runEnsemble(cmd, cfg, st)
	}

	ms := metrics.Default()
	clock := animator.NewFakeClock(time.Now())
	anim := newAnimator(cfg, log, animator.WithClock(clock), animator.WithObserver(ms.Observe))
	ms.Observe(anim.Field())
	if err := anim.Start(cmd.Context()); err != nil {
		return err
	}
	for i := 0; i < snapshotTicks; i++ {
		clock.Advance(cfg.TickInterval())
	}
	anim.Stop()

	ac := anim.Config()
	id, err := st.Save(storage.Run{
		Label:   label,
		Seed:    cfg.Seed,
		TickMs:  cfg.TickMs,
		Ticks:   anim.Ticks(),
		Palette: ac.Palette,
		Metrics: ms.Values(),
	}, anim.Field())
	if err != nil {
		return err
	}
	log.Info("snapshot saved", zap.String("id", id), zap.Int("ticks", anim.Ticks()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "snapshot id: %s\n", id)
	fmt.Fprintf(out, "particles: %d\n", anim.Field().Len())
	fmt.Fprintf(out, "ticks: %d\n", anim.Ticks())
	return nil
}

// runEnsemble stores one snapshot per seed, counting up from cfg.Seed.
func runEnsemble(cmd *cobra.Command, cfg *config.Config, st *storage.Store) error {
	ac := cfg.AnimatorConfig()
	results, err := ensemble.New(ac, runs, cfg.Seed).Run(cmd.Context(), snapshotTicks)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tWRAPS\tTRAVEL")
	for i, r := range results {
		id, err := st.Save(storage.Run{
			Label:   fmt.Sprintf("%s-%d", label, i),
			Seed:    r.Seed,
			TickMs:  cfg.TickMs,
			Ticks:   r.Ticks,
			Palette: ac.Palette,
			Metrics: r.Metrics,
		}, r.Field)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.4f\n", id, r.Seed, r.Metrics["wraps"], r.Metrics["travel_per_tick"])
	}
	return w.Flush()
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	snaps, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tPARTICLES\tTICKS\tGEN\tSEED")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			s.ID,
			s.Label,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Count,
			s.Ticks,
			s.Generation,
			s.Seed,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	if field.Len() == 0 {
		return nil
	}

	xs, ys := histograms(field, histogramBins)
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
		asciigraph.Caption("particles per band: x (magenta), y (cyan)")))
	return nil
}

// histograms counts particles in equal bands of each axis.
func histograms(f particles.Field, bins int) (xs, ys []float64) {
	xs = make([]float64, bins)
	ys = make([]float64, bins)
	band := func(v float64) int {
		i := int(v / particles.Extent * float64(bins))
		return min(max(i, 0), bins-1)
	}
	for _, p := range f.Particles {
		xs[band(p.Position.X)]++
		ys[band(p.Position.Y)]++
	}
	return xs, ys
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)

	if csvOut == "" {
		return st.ExportCSV(args[0], cmd.OutOrStdout())
	}
	f, err := os.Create(csvOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportCSV(args[0], f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", csvOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tTICK\tPALETTE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%dms\t%v\n", name, p.ParticleCount, p.TickMs, p.Palette)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
