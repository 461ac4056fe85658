package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSettingsLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "savibe.yaml")
	if err := os.WriteFile(path, []byte("tick_ms: 70\ntheme: noir\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SAVIBE_THEME", "pastel")

	out, err := execute(t, "config", "--preset", "calm", "--config", path, "--particles", "12")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{
		"particle_count: 12", // flag over preset
		"tick_ms: 70",        // file over preset
		"theme: pastel",      // env over file
	} {
		if !strings.Contains(out, want) {
			t.Errorf("resolved config missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"config", "--preset", "nope"}, "unknown preset"},
		{"unknown theme", []string{"config", "--theme", "plaid"}, "unknown theme"},
		{"bad palette", []string{"config", "--palette", "#xyz123"}, "--palette"},
		{"negative count", []string{"config", "--particles", "-3"}, "particle_count"},
		{"missing file", []string{"config", "--config", "/does/not/exist.yaml"}, "failed to load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSnapshotWorkflow(t *testing.T) {
	data := t.TempDir()

	out, err := execute(t, "snapshot", "--data", data, "--ticks", "25", "--particles", "30", "--seed", "5", "--label", "demo")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(out, "ticks: 25") || !strings.Contains(out, "particles: 30") {
		t.Errorf("snapshot output:\n%s", out)
	}

	snaps, err := storage.New(data).List()
	if err != nil || len(snaps) != 1 {
		t.Fatalf("stored snapshots = %d, err %v", len(snaps), err)
	}
	id := snaps[0].ID
	if snaps[0].Ticks != 25 || snaps[0].Seed != 5 {
		t.Errorf("metadata = %+v", snaps[0])
	}
	if snaps[0].Metrics["in_bounds"] != 1 {
		t.Errorf("metrics = %v", snaps[0].Metrics)
	}

	out, err = execute(t, "list", "--data", data)
	if err != nil || !strings.Contains(out, id) {
		t.Errorf("list missing %s (err %v):\n%s", id, err, out)
	}

	out, err = execute(t, "show", id, "--data", data)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"label": "demo"`) || !strings.Contains(out, "particles per band") {
		t.Errorf("show output:\n%s", out)
	}

	out, err = execute(t, "export-csv", id, "--data", data)
	if err != nil {
		t.Fatalf("export-csv: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 31 {
		t.Errorf("csv lines = %d, want 31", lines)
	}
}

func TestSnapshotIsReproducible(t *testing.T) {
	data := t.TempDir()
	for i := 0; i < 2; i++ {
		if _, err := execute(t, "snapshot", "--data", data, "--ticks", "10", "--particles", "5", "--seed", "11"); err != nil {
			t.Fatal(err)
		}
	}
	st := storage.New(data)
	snaps, _ := st.List()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d", len(snaps))
	}
	a, _ := st.LoadField(snaps[0].ID)
	b, _ := st.LoadField(snaps[1].ID)
	for i := range a.Particles {
		if a.Particles[i].Position != b.Particles[i].Position {
			t.Fatalf("particle %d differs between runs with the same seed", i)
		}
	}
}

func TestSnapshotRecordsResolvedSeed(t *testing.T) {
	data := t.TempDir()
	if _, err := execute(t, "snapshot", "--data", data, "--ticks", "4", "--particles", "5"); err != nil {
		t.Fatal(err)
	}
	st := storage.New(data)
	snaps, _ := st.List()
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d", len(snaps))
	}
	seed := snaps[0].Seed
	if seed == 0 {
		t.Fatal("stored seed is 0; the run cannot be replayed")
	}

	replay := t.TempDir()
	if _, err := execute(t, "snapshot", "--data", replay, "--ticks", "4", "--particles", "5",
		"--seed", strconv.FormatUint(seed, 10)); err != nil {
		t.Fatal(err)
	}
	again, _ := storage.New(replay).List()
	a, _ := st.LoadField(snaps[0].ID)
	b, _ := storage.New(replay).LoadField(again[0].ID)
	for i := range a.Particles {
		if a.Particles[i].Position != b.Particles[i].Position {
			t.Fatalf("particle %d differs when replaying seed %d", i, seed)
		}
	}
}

func TestSnapshotEnsemble(t *testing.T) {
	data := t.TempDir()
	out, err := execute(t, "snapshot", "--data", data, "--runs", "3", "--ticks", "5", "--particles", "4", "--seed", "20")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snaps, _ := storage.New(data).List()
	if len(snaps) != 3 {
		t.Fatalf("stored %d snapshots, want 3:\n%s", len(snaps), out)
	}
	seeds := map[uint64]bool{}
	for _, s := range snaps {
		seeds[s.Seed] = true
	}
	for _, want := range []uint64{20, 21, 22} {
		if !seeds[want] {
			t.Errorf("missing seed %d in %v", want, seeds)
		}
	}
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "list", "--data", t.TempDir())
	if err != nil || !strings.Contains(out, "no snapshots found") {
		t.Errorf("list = %q, %v", out, err)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "index.html")
	svg := filepath.Join(dir, "field.svg")
	gifOut := filepath.Join(dir, "field.gif")
	trails := filepath.Join(dir, "trails.svg")

	_, err := execute(t, "export", "--particles", "8", "--ticks", "3", "--frames", "4",
		"--html", html, "--svg", svg, "--gif", gifOut, "--trails", trails)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, p := range []string{html, svg, gifOut, trails} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", p, err)
		}
	}

	if _, err := execute(t, "export"); err == nil {
		t.Error("export without outputs should fail")
	}
}

func TestExportRejectsEmptyImage(t *testing.T) {
	gifOut := filepath.Join(t.TempDir(), "field.gif")
	for _, args := range [][]string{
		{"--width", "0"},
		{"--height", "-1"},
	} {
		_, err := execute(t, append([]string{"export", "--gif", gifOut}, args...)...)
		if err == nil || !strings.Contains(err.Error(), "must be positive") {
			t.Errorf("%v: error = %v", args, err)
		}
	}
	if _, err := os.Stat(gifOut); !os.IsNotExist(err) {
		t.Errorf("gif written for an empty image: %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"landing", "component", "storm"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets missing %s", name)
		}
	}
}

func TestHistograms(t *testing.T) {
	f := testField(0, 99.99, 50)
	xs, ys := histograms(f, 10)
	if xs[0] != 1 || xs[9] != 1 || xs[5] != 1 {
		t.Errorf("xs = %v", xs)
	}
	total := 0.0
	for _, v := range ys {
		total += v
	}
	if total != 3 {
		t.Errorf("ys total = %v", total)
	}
}

func testField(xs ...float64) particles.Field {
	f := particles.Field{Generation: 1}
	for i, x := range xs {
		f.Particles = append(f.Particles, particles.Particle{ID: i, Position: particles.Vec2{X: x, Y: x}})
	}
	return f
}
