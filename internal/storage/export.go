package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata      `json:"run"`
	Samples []ExportedSample `json:"samples"`
}

type ExportedSample struct {
	Frame          uint64  `json:"frame"`
	LeaderX        float64 `json:"leader_x"`
	LeaderY        float64 `json:"leader_y"`
	TargetDistance float64 `json:"target_distance"`
	LeaderSpeed    float64 `json:"leader_speed"`
}

// ExportJSON writes a run and its series as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Samples: make([]ExportedSample, len(samples))}
	for i, smp := range samples {
		data.Samples[i] = ExportedSample(smp)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
