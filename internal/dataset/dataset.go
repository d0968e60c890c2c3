// Package dataset holds supervised training examples for the perceptron.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// ErrEmpty is returned when a dataset would contain no samples.
var ErrEmpty = errors.New("dataset is empty")

// RowError reports a malformed CSV row.
type RowError struct {
	Row     int    // 1-based row number in the file
	Details string // What is wrong with the row
	Err     error  // Underlying parse error, if any
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Details, e.Err)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Details)
}

// Unwrap returns the underlying parse error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Sample is one (input, target) training pair.
type Sample struct {
	Inputs  []float64
	Targets []float64
}

// Dataset is an ordered collection of samples sharing the same input and
// target lengths.
type Dataset struct {
	Samples []Sample
	Inputs  int // Length of every Sample.Inputs
	Outputs int // Length of every Sample.Targets
}

// XOR returns the four-sample exclusive-or truth table.
func XOR() *Dataset {
	return &Dataset{
		Samples: []Sample{
			{Inputs: []float64{0, 0}, Targets: []float64{0}},
			{Inputs: []float64{0, 1}, Targets: []float64{1}},
			{Inputs: []float64{1, 0}, Targets: []float64{1}},
			{Inputs: []float64{1, 1}, Targets: []float64{0}},
		},
		Inputs:  2,
		Outputs: 1,
	}
}

// LoadCSV reads samples from CSV data.
//
// Each row holds numInputs input values followed by one or more target
// values; every row must have the same number of columns.
//
//	x1,x2,y
//	0,1,1
//	1,1,0
//
// Parameters:
//   - r: CSV source
//   - numInputs: number of leading columns used as inputs (must be > 0)
//   - header: skip the first row
func LoadCSV(r io.Reader, numInputs int, header bool) (*Dataset, error) {
	if numInputs <= 0 {
		return nil, fmt.Errorf("invalid input count %d (must be > 0)", numInputs)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // row widths are checked below
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	first := 0
	if header {
		first = 1
	}
	if len(records) <= first {
		return nil, ErrEmpty
	}

	width := len(records[first])
	if width <= numInputs {
		return nil, &RowError{
			Row:     first + 1,
			Details: fmt.Sprintf("got %d columns, need more than %d inputs", width, numInputs),
		}
	}

	d := &Dataset{
		Samples: make([]Sample, 0, len(records)-first),
		Inputs:  numInputs,
		Outputs: width - numInputs,
	}
	for i := first; i < len(records); i++ {
		record := records[i]
		if len(record) != width {
			return nil, &RowError{Row: i + 1, Details: fmt.Sprintf("got %d columns, want %d", len(record), width)}
		}

		values := make([]float64, width)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &RowError{Row: i + 1, Details: fmt.Sprintf("column %d", j+1), Err: err}
			}
			values[j] = v
		}

		d.Samples = append(d.Samples, Sample{
			Inputs:  values[:numInputs:numInputs],
			Targets: values[numInputs:],
		})
	}

	return d, nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string, numInputs int, header bool) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	d, err := LoadCSV(file, numInputs, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Split divides the dataset into training and validation parts.
// The last validationRatio fraction of samples forms the validation set.
func (d *Dataset) Split(validationRatio float64) (train, validation *Dataset) {
	splitIdx := int(float64(d.Len()) * (1.0 - validationRatio))
	splitIdx = max(0, min(splitIdx, d.Len()))

	return &Dataset{Samples: d.Samples[:splitIdx], Inputs: d.Inputs, Outputs: d.Outputs},
		&Dataset{Samples: d.Samples[splitIdx:], Inputs: d.Inputs, Outputs: d.Outputs}
}

// Normalize rescales every input column to [0, 1] in place using its
// minimum and maximum. Constant columns become 0.
func (d *Dataset) Normalize() {
	if d.Len() == 0 {
		return
	}

	column := make([]float64, d.Len())
	for j := 0; j < d.Inputs; j++ {
		for i, s := range d.Samples {
			column[i] = s.Inputs[j]
		}
		lo, hi := floats.Min(column), floats.Max(column)
		span := hi - lo
		for _, s := range d.Samples {
			if span == 0 {
				s.Inputs[j] = 0
				continue
			}
			s.Inputs[j] = (s.Inputs[j] - lo) / span
		}
	}
}
