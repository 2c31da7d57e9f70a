package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/fluxsim/internal/field"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Length   float64            `json:"length"`
	Points   []int              `json:"points"`
	Dt       float64            `json:"dt"`
	Steps    int                `json:"steps"`
	Time     float64            `json:"time"`
	Coords   [][]float64        `json:"coords"`
	Phi      []float64          `json:"phi"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, g *field.Grid, phi field.Field) *ExportData {
	coords := make([][]float64, g.Dim())
	for axis := range coords {
		coords[axis] = g.Coords(axis)
	}
	return &ExportData{
		Scenario: meta.Scenario,
		Length:   g.Length(),
		Points:   g.Shape(),
		Dt:       meta.Dt,
		Steps:    meta.StepsTaken,
		Time:     meta.Time,
		Coords:   coords,
		Phi:      phi,
		Metrics:  meta.Metrics,
	}
}

// Encode writes d as indented JSON. A field holding NaN or Inf cannot be
// represented and is rejected.
func (d *ExportData) Encode(w io.Writer) error {
	if !field.Field(d.Phi).IsValid() {
		return fmt.Errorf("%w: field has non-finite values, export it as CSV", field.ErrNumericalDivergence)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return data.Encode(file)
}

func ExportJSONStdout(data *ExportData) error {
	return data.Encode(os.Stdout)
}

// ExportCSV writes the field of a run to path in the field.csv layout.
func ExportCSV(path string, g *field.Grid, phi field.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFieldCSV(file, g, phi)
}
