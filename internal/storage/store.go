package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/savibeshop/savibe/internal/particles"
)

var ErrNotFound = errors.New("storage: snapshot not found")

const (
	metadataFile  = "metadata.json"
	particlesFile = "particles.csv"
)

// Store keeps field snapshots on disk, one directory per snapshot.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SnapshotMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	TickMs     int                `json:"tick_ms"`
	Ticks      int                `json:"ticks"`
	Generation uint64             `json:"generation"`
	Count      int                `json:"count"`
	Palette    []string           `json:"palette"`
	Stats      map[string]float64 `json:"stats"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Run describes how a snapshot's field was produced.
type Run struct {
	Label   string
	Seed    uint64
	TickMs  int
	Ticks   int
	Palette particles.Palette
	Metrics map[string]float64
}

var header = []string{"id", "x", "y", "size", "color", "opacity", "vx", "vy", "float_ns"}

func (s *Store) Save(run Run, f particles.Field) (string, error) {
	if run.Label == "" {
		run.Label = "field"
	}
	now := s.now()
	id := fmt.Sprintf("%s_%d", run.Label, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", dir, err)
	}

	meta := SnapshotMetadata{
		ID:         id,
		Label:      run.Label,
		Timestamp:  now,
		Seed:       run.Seed,
		TickMs:     run.TickMs,
		Ticks:      run.Ticks,
		Generation: f.Generation,
		Count:      f.Len(),
		Palette:    run.Palette.Strings(),
		Stats:      Summarize(f),
		Metrics:    run.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, particlesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeParticles(csvFile, f); err != nil {
		return "", err
	}
	return id, nil
}

func writeParticles(out io.Writer, f particles.Field) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range f.Particles {
		row := []string{
			strconv.Itoa(p.ID),
			strconv.FormatFloat(p.Position.X, 'f', -1, 64),
			strconv.FormatFloat(p.Position.Y, 'f', -1, 64),
			strconv.FormatFloat(p.Size, 'f', -1, 64),
			string(p.Color),
			strconv.FormatFloat(p.Opacity, 'f', -1, 64),
			strconv.FormatFloat(p.Velocity.X, 'f', -1, 64),
			strconv.FormatFloat(p.Velocity.Y, 'f', -1, 64),
			strconv.FormatInt(int64(p.FloatPeriod), 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", id, err)
	}
	return &meta, nil
}

// LoadField reads the particles of a snapshot back into a Field.
func (s *Store) LoadField(id string) (particles.Field, error) {
	meta, err := s.Load(id)
	if err != nil {
		return particles.Field{}, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, particlesFile))
	if err != nil {
		return particles.Field{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return particles.Field{}, fmt.Errorf("storage: read %s particles: %w", id, err)
	}

	f := particles.Field{Generation: meta.Generation}
	if len(records) < 2 {
		return f, nil
	}

	f.Particles = make([]particles.Particle, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parseParticle(rec)
		if err != nil {
			return particles.Field{}, fmt.Errorf("storage: %s row %d: %w", id, i+1, err)
		}
		p.Generation = meta.Generation
		f.Particles = append(f.Particles, p)
	}
	return f, nil
}

func parseParticle(rec []string) (particles.Particle, error) {
	var p particles.Particle
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return p, err
	}
	var vals [6]float64
	for i, col := range []int{1, 2, 3, 5, 6, 7} {
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			return p, err
		}
		vals[i] = v
	}
	ns, err := strconv.ParseInt(rec[8], 10, 64)
	if err != nil {
		return p, err
	}

	p.ID = id
	p.Position = particles.Vec2{X: vals[0], Y: vals[1]}
	p.Size = vals[2]
	p.Color = particles.Color(rec[4])
	p.Opacity = vals[3]
	p.Velocity = particles.Vec2{X: vals[4], Y: vals[5]}
	p.FloatPeriod = time.Duration(ns)
	return p, nil
}

// ExportCSV copies a snapshot's particle table to w.
func (s *Store) ExportCSV(id string, w io.Writer) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	file, err := os.Open(filepath.Join(s.baseDir, id, particlesFile))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}

// Summarize reports mean position, speed, size and opacity of a field.
func Summarize(f particles.Field) map[string]float64 {
	stats := map[string]float64{}
	n := float64(f.Len())
	if n == 0 {
		return stats
	}
	var speed, size, opacity float64
	for _, p := range f.Particles {
		speed += math.Hypot(p.Velocity.X, p.Velocity.Y)
		size += p.Size
		opacity += p.Opacity
	}
	c := f.Centroid()
	stats["mean_x"] = c.X
	stats["mean_y"] = c.Y
	stats["mean_speed"] = speed / n
	stats["mean_size"] = size / n
	stats["mean_opacity"] = opacity / n
	return stats
}
