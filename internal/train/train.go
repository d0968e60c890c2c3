// Package train runs epochs of online training over a dataset.
//
// Every sample is a separate gradient step (no batching). An epoch visits
// each sample once, optionally in a shuffled order, and reports the mean of
// the per-step errors.
package train

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/born-ml/perceptron/internal/dataset"
)

// Learner is a model trained one example at a time.
type Learner interface {
	Train(inputs, targets []float64) error
	LastAverageError() float64
}

// Predictor is a model that maps inputs to outputs.
type Predictor interface {
	Infer(inputs []float64) ([]float64, error)
}

// Config holds configuration for Run.
type Config struct {
	Epochs   int         // Number of passes over the data (default: 1)
	Shuffle  bool        // Visit samples in a random order each epoch
	Rand     *rand.Rand  // Source for shuffling (required when Shuffle is set)
	Logger   *log.Logger // Progress output; nil disables logging
	LogEvery int         // Log every N epochs (default: 1)
}

// Run trains m on every sample of d for cfg.Epochs epochs.
//
// Returns the mean training error of each completed epoch. The context is
// checked before every step; on cancellation the errors of completed epochs
// are returned together with ctx.Err().
func Run(ctx context.Context, m Learner, d *dataset.Dataset, cfg Config) ([]float64, error) {
	if d.Len() == 0 {
		return nil, dataset.ErrEmpty
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 1
	}
	if cfg.Shuffle && cfg.Rand == nil {
		return nil, fmt.Errorf("train: shuffle requires a random source")
	}

	order := make([]int, d.Len())
	for i := range order {
		order[i] = i
	}

	history := make([]float64, 0, cfg.Epochs)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if cfg.Shuffle {
			cfg.Rand.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		total := 0.0
		for _, idx := range order {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			s := d.Samples[idx]
			if err := m.Train(s.Inputs, s.Targets); err != nil {
				return history, fmt.Errorf("epoch %d, sample %d: %w", epoch+1, idx, err)
			}
			total += m.LastAverageError()
		}

		mean := total / float64(d.Len())
		history = append(history, mean)

		if cfg.Logger != nil && ((epoch+1)%cfg.LogEvery == 0 || epoch+1 == cfg.Epochs) {
			cfg.Logger.Printf("epoch %d/%d: error=%.6f", epoch+1, cfg.Epochs, mean)
		}
	}

	return history, nil
}

// Evaluate returns the mean absolute error of m over every output of every
// sample in d. It does not modify the model.
func Evaluate(m Predictor, d *dataset.Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0, dataset.ErrEmpty
	}

	total, count := 0.0, 0
	for i, s := range d.Samples {
		out, err := m.Infer(s.Inputs)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if len(out) != len(s.Targets) {
			return 0, fmt.Errorf("sample %d: got %d outputs, want %d", i, len(out), len(s.Targets))
		}
		for j := range out {
			total += math.Abs(s.Targets[j] - out[j])
		}
		count += len(out)
	}

	return total / float64(count), nil
}
