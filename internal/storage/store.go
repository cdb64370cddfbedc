// Package storage keeps orbit runs on disk, one directory per run holding
// metadata.json and states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/scfsim/internal/dynamo"
)

var ErrRunNotFound = errors.New("storage: run not found")

var stateHeader = []string{"t", "R", "vR", "vT", "z", "vz", "phi", "E"}

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
	ID        string             `json:"id"`
	Profile   string             `json:"profile"`
	Timestamp time.Time          `json:"timestamp"`
	Order     int                `json:"order"`
	Scale     float64            `json:"scale"`
	Method    string             `json:"method"`
	Tolerance float64            `json:"tolerance"`
	VXVV      []float64          `json:"vxvv"`
	T0        float64            `json:"t0"`
	T1        float64            `json:"t1"`
	Samples   int                `json:"samples"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its ID. meta.ID, Timestamp, Samples and
// Metrics are filled in from the run.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Profile, now.UnixNano())
	meta.Timestamp = now
	meta.Samples = len(result.Times)
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics
	if len(result.Times) > 0 {
		meta.T0, meta.T1 = result.Times[0], result.Times[len(result.Times)-1]
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeStates(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(stateHeader); err != nil {
		return err
	}
	for i, state := range result.States {
		if len(state) != len(stateHeader)-2 {
			return fmt.Errorf("%w: state %d has %d components", dynamo.ErrDimensionMismatch, i, len(state))
		}
		row := make([]string, 0, len(stateHeader))
		row = append(row, formatFloat(result.Times[i]))
		for _, v := range state {
			row = append(row, formatFloat(v))
		}
		e := 0.0
		if i < len(result.Energies) {
			e = result.Energies[i]
		}
		row = append(row, formatFloat(e))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

// LoadStates reads back the cylindrical states, sample times and energies
// of a run.
func (s *Store) LoadStates(runID string) (states [][]float64, times, energies []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(stateHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, []float64{}, nil
	}

	for line, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			row[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("states.csv line %d: %w", line+2, err)
			}
		}
		times = append(times, row[0])
		states = append(states, row[1:len(row)-1])
		energies = append(energies, row[len(row)-1])
	}
	return states, times, energies, nil
}

type ExportData struct {
	RunMetadata
	Times    []float64   `json:"times"`
	States   [][]float64 `json:"states"`
	Energies []float64   `json:"energies"`
}

// ExportJSON writes a stored run, metadata and samples, as one JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, energies, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		RunMetadata: *meta,
		Times:       times,
		States:      states,
		Energies:    energies,
	})
}
