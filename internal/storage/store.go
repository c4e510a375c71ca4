package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/numlab/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	T0         float64            `json:"t0"`
	Tf         float64            `json:"tf"`
	Steps      int                `json:"steps"`
	Y0         []float64          `json:"y0"`
	Final      []float64          `json:"final"`
	Params     map[string]float64 `json:"params,omitempty"`
}

// Save writes meta and the trajectory under a new run directory and returns
// its id. ID, Timestamp, Steps and Final are filled in from the trajectory.
// On failure the run directory is removed.
func (s *Store) Save(meta RunMetadata, traj *dynamo.Trajectory) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = traj.Len()
	// JSON cannot encode NaN or Inf; the CSV still records them.
	meta.Y0 = finiteState(meta.Y0)
	meta.Params = finiteParams(meta.Params)
	if traj.Len() > 0 {
		meta.Final = finiteState(traj.Final())
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), traj); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

// finiteState returns s, or nil if any component is NaN or Inf.
func finiteState(s []float64) []float64 {
	if !dynamo.State(s).IsValid() {
		return nil
	}
	return s
}

// finiteParams returns a copy of params without NaN or Inf values.
func finiteParams(params map[string]float64) map[string]float64 {
	if params == nil {
		return nil
	}
	out := make(map[string]float64, len(params))
	for k, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeStates(path string, traj *dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for i := 0; i < traj.Dim(); i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for k := 0; k < traj.Len(); k++ {
		row := []string{formatFloat(traj.Times[k])}
		for _, val := range traj.At(k) {
			row = append(row, formatFloat(val))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
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

// LoadStates reads the recorded states (one per time point) and their times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", statesFile, i+1, err)
		}

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d: %w", statesFile, i+1, err)
			}
			state = append(state, val)
		}

		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
