package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/metrics"
	"github.com/san-kum/neonfield/internal/scene"
)

var ErrRunNotFound = errors.New("storage: run not found")

var frameHeader = []string{
	"frame", "edges", "overshoot", "sway_x", "sway_y",
	"active", "x", "y", "lag", "rot_x", "rot_y", "raw_x", "raw_y",
}

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

type RunMetadata struct {
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	Config    *config.Config     `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(script string, cfg *config.Config, result *scene.Result) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", script, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Script:    script,
		Timestamp: ts,
		Seed:      cfg.Seed,
		Frames:    result.Frames,
		Particles: cfg.Field.Count,
		Config:    cfg,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(formatSample(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func formatSample(s metrics.Sample) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		strconv.Itoa(s.Frame), strconv.Itoa(s.Edges), f(s.Overshoot), f(s.SwayX), f(s.SwayY),
		strconv.FormatBool(s.Active), f(s.X), f(s.Y), f(s.Lag), f(s.RotX), f(s.RotY), f(s.RawX), f(s.RawY),
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame samples of a run. Rows that fail to
// parse are skipped.
func (s *Store) LoadFrames(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		smp, err := parseSample(rec)
		if err != nil {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (metrics.Sample, error) {
	if len(rec) != len(frameHeader) {
		return metrics.Sample{}, fmt.Errorf("expected %d fields, got %d", len(frameHeader), len(rec))
	}

	var s metrics.Sample
	var err error
	if s.Frame, err = strconv.Atoi(rec[0]); err != nil {
		return s, err
	}
	if s.Edges, err = strconv.Atoi(rec[1]); err != nil {
		return s, err
	}
	if s.Active, err = strconv.ParseBool(rec[5]); err != nil {
		return s, err
	}

	floats := []*float64{&s.Overshoot, &s.SwayX, &s.SwayY, nil, &s.X, &s.Y, &s.Lag, &s.RotX, &s.RotY, &s.RawX, &s.RawY}
	for i, dst := range floats {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.ParseFloat(rec[i+2], 64); err != nil {
			return s, err
		}
	}
	return s, nil
}
