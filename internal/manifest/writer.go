package manifest

import (
	"encoding/json"
	"os"
	"time"
)

// New creates an empty manifest for one operation.
func New(operation, geom string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Operation:   operation,
		Geometry:    geom,
	}
}

// ComputeStats recalculates aggregate statistics from the outputs.
func (m *Manifest) ComputeStats() {
	failed := m.Stats.Failed
	var s Stats
	s.TotalOutputs = len(m.Outputs)
	for _, o := range m.Outputs {
		s.TotalInputBytes += o.SourceSize
		s.TotalOutputBytes += o.Size
	}
	s.Failed = failed
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
