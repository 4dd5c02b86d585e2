package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/googly/internal/sim"
)

type ExportData struct {
	RunInfo
	Steps   int                `json:"steps"`
	Columns []string           `json:"columns"`
	Times   []float64          `json:"times"`
	Rows    [][]float64        `json:"rows"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as a single JSON document.
func ExportJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	data := ExportData{
		RunInfo: info,
		Steps:   result.StepsTaken,
		Columns: sim.SampleColumns,
		Times:   result.Times(),
		Rows:    make([][]float64, len(result.Samples)),
		Metrics: result.Metrics,
	}
	for i, s := range result.Samples {
		data.Rows[i] = s.Values()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
