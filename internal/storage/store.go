// Package storage persists completed runs: one directory per run holding
// metadata.json, a per-step summary CSV, and the sparse ledger history.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lruiz/demonsim/internal/config"
	"github.com/lruiz/demonsim/internal/ledger"
	"github.com/lruiz/demonsim/internal/sim"
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Particles int                `json:"particles"`
	Dims      int                `json:"dims"`
	Threshold float64            `json:"threshold"`
	FastPass  string             `json:"fast_pass"`
	SlowPass  string             `json:"slow_pass"`
	Bits      int                `json:"bits"`
	Energy    float64            `json:"energy"`
	Metrics   map[string]float64 `json:"metrics"`
}

// StepRecord is one row of the per-step summary.
type StepRecord struct {
	Step     int
	Time     float64
	GateOpen bool
	BitsStep int
	CountA   int
	CountB   int
	Bits     int
	Energy   float64
}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("demon_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	final := result.Final()
	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Steps:     result.Steps,
		Particles: cfg.Particles,
		Dims:      cfg.Dims,
		Threshold: cfg.Threshold,
		FastPass:  cfg.Policy.FastPass,
		SlowPass:  cfg.Policy.SlowPass,
		Bits:      final.Bits,
		Energy:    final.Energy,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := s.writeSteps(filepath.Join(runDir, "steps.csv"), result.Snapshots); err != nil {
		return "", err
	}
	if err := s.writeHistory(filepath.Join(runDir, "ledger.csv"), result.History); err != nil {
		return "", err
	}
	return runID, nil
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

func (s *Store) writeSteps(path string, snaps []sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "gate_open", "bits_step", "count_a", "count_b", "bits", "energy"}); err != nil {
		return err
	}
	for _, snap := range snaps {
		row := []string{
			strconv.Itoa(snap.Step),
			strconv.FormatFloat(snap.Time, 'f', 6, 64),
			strconv.FormatBool(snap.GateOpen),
			strconv.Itoa(snap.BitsThisStep),
			strconv.Itoa(snap.CountA),
			strconv.Itoa(snap.CountB),
			strconv.Itoa(snap.Bits),
			strconv.FormatFloat(snap.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeHistory(path string, history []ledger.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "bits", "energy"}); err != nil {
		return err
	}
	for _, sample := range history {
		row := []string{
			strconv.Itoa(sample.Step),
			strconv.Itoa(sample.Bits),
			strconv.FormatFloat(sample.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		return nil, err
	}

	steps := make([]StepRecord, 0, len(records))
	for _, rec := range records {
		if len(rec) < 8 {
			continue
		}
		step, _ := strconv.Atoi(rec[0])
		tm, _ := strconv.ParseFloat(rec[1], 64)
		open, _ := strconv.ParseBool(rec[2])
		bitsStep, _ := strconv.Atoi(rec[3])
		countA, _ := strconv.Atoi(rec[4])
		countB, _ := strconv.Atoi(rec[5])
		bits, _ := strconv.Atoi(rec[6])
		energy, _ := strconv.ParseFloat(rec[7], 64)
		steps = append(steps, StepRecord{
			Step: step, Time: tm, GateOpen: open, BitsStep: bitsStep,
			CountA: countA, CountB: countB, Bits: bits, Energy: energy,
		})
	}
	return steps, nil
}

func (s *Store) LoadHistory(runID string) ([]ledger.Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "ledger.csv"))
	if err != nil {
		return nil, err
	}

	history := make([]ledger.Sample, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		step, _ := strconv.Atoi(rec[0])
		bits, _ := strconv.Atoi(rec[1])
		energy, _ := strconv.ParseFloat(rec[2], 64)
		history = append(history, ledger.Sample{Step: step, Bits: bits, Energy: energy})
	}
	return history, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}
	return records[1:], nil // skip header
}
