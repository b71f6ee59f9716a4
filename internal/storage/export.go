package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	RunInfo
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	Kinetic []float64          `json:"kinetic"`
	Frames  [][]ExportBody     `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

type ExportBody struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

func newExportData(info RunInfo, result *sim.Result) ExportData {
	data := ExportData{
		RunInfo: info,
		Steps:   result.StepsTaken,
		Times:   make([]float64, len(result.Frames)),
		Kinetic: result.KineticSeries(),
		Frames:  make([][]ExportBody, len(result.Frames)),
		Metrics: result.Metrics,
	}
	for i, f := range result.Frames {
		data.Times[i] = f.Time
		bodies := make([]ExportBody, len(f.Bodies))
		for j, b := range f.Bodies {
			bodies[j] = ExportBody{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY}
		}
		data.Frames[i] = bodies
	}
	return data
}

func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(info, result))
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, info, result)
}

func ExportJSONStdout(info RunInfo, result *sim.Result) error {
	return WriteJSON(os.Stdout, info, result)
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFramesCSV(file, result.Frames)
}
