package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/fluxsim/internal/experiment"
	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/potentials"
)

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
	tmpPrefix    = ".tmp-"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Length     float64            `json:"length"`
	Points     []int              `json:"points"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Mass       float64            `json:"mass"`
	Coupling   float64            `json:"coupling"`
	Initial    string             `json:"initial"`
	Terms      []potentials.Spec  `json:"terms,omitempty"`
	StepsTaken int                `json:"steps_taken"`
	Time       float64            `json:"time"`
	Elapsed    string             `json:"elapsed"`
	Metrics    map[string]float64 `json:"metrics"`
	NonFinite  map[string]string  `json:"non_finite_metrics,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Grid rebuilds the grid a run was computed on.
func (m *RunMetadata) Grid() (*field.Grid, error) {
	return field.NewGrid(m.Length, m.Points...)
}

// Save writes metadata.json and field.csv for a finished run. runErr is
// recorded when the run stopped early. The run directory only appears once
// both files are complete.
func (s *Store) Save(result *experiment.Result, runErr error) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Scenario, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d_%d", result.Scenario, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	cfg := result.Config
	meta := RunMetadata{
		ID:         runID,
		Scenario:   result.Scenario,
		Timestamp:  now,
		Length:     result.Grid.Length(),
		Points:     result.Grid.Shape(),
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		Mass:       cfg.Mass,
		Coupling:   cfg.Coupling,
		Initial:    cfg.Initial,
		Terms:      cfg.Terms,
		StepsTaken: result.StepsTaken,
		Time:       result.Time,
		Elapsed:    result.Elapsed.String(),
	}
	meta.Metrics, meta.NonFinite = splitMetrics(result.Metrics)
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	tmpDir, err := os.MkdirTemp(s.baseDir, tmpPrefix+runID+"-")
	if err != nil {
		return "", err
	}
	if err := writeRun(tmpDir, &meta, result); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}
	if err := os.Rename(tmpDir, runDir); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	return runID, nil
}

func writeRun(dir string, meta *RunMetadata, result *experiment.Result) error {
	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, fieldFile))
	if err != nil {
		return err
	}
	if err := WriteFieldCSV(csvFile, result.Grid, result.Field); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

// splitMetrics separates values JSON can encode from NaN and Inf, which are
// kept as their string form.
func splitMetrics(m map[string]float64) (map[string]float64, map[string]string) {
	finite := make(map[string]float64, len(m))
	var other map[string]string
	for name, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if other == nil {
				other = make(map[string]string)
			}
			other[name] = strconv.FormatFloat(v, 'g', -1, 64)
			continue
		}
		finite[name] = v
	}
	return finite, other
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List returns the metadata of every stored run, oldest first.
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
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadField returns the metadata, grid and final field of a stored run.
func (s *Store) LoadField(runID string) (*RunMetadata, *field.Grid, field.Field, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	g, err := meta.Grid()
	if err != nil {
		return nil, nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	phi, err := ReadFieldCSV(file, g)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return meta, g, phi, nil
}
