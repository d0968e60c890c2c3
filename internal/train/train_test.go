package train

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/born-ml/perceptron/internal/activation"
	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLearner records the inputs it is trained on.
type countingLearner struct {
	seen   [][]float64
	failAt int // fail on this call (1-based); 0 never fails
	cancel context.CancelFunc
}

func (c *countingLearner) Train(inputs, _ []float64) error {
	c.seen = append(c.seen, inputs)
	if c.failAt > 0 && len(c.seen) == c.failAt {
		return errors.New("boom")
	}
	if c.cancel != nil && len(c.seen) == 2 {
		c.cancel()
	}
	return nil
}

func (c *countingLearner) LastAverageError() float64 {
	return float64(len(c.seen))
}

func orDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Samples: []dataset.Sample{
			{Inputs: []float64{0, 0}, Targets: []float64{0}},
			{Inputs: []float64{0, 1}, Targets: []float64{1}},
			{Inputs: []float64{1, 0}, Targets: []float64{1}},
			{Inputs: []float64{1, 1}, Targets: []float64{1}},
		},
		Inputs:  2,
		Outputs: 1,
	}
}

func TestRun_VisitsEverySamplePerEpoch(t *testing.T) {
	l := &countingLearner{}
	history, err := Run(context.Background(), l, dataset.XOR(), Config{Epochs: 3})
	require.NoError(t, err)

	assert.Len(t, l.seen, 12)
	require.Len(t, history, 3)
	// Epoch 1 sees errors 1..4, so its mean is 2.5.
	assert.InDelta(t, 2.5, history[0], 1e-12)
	assert.Equal(t, dataset.XOR().Samples[0].Inputs, l.seen[4])
}

func TestRun_Shuffle(t *testing.T) {
	l := &countingLearner{}
	_, err := Run(context.Background(), l, dataset.XOR(), Config{Epochs: 5, Shuffle: true, Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)
	assert.Len(t, l.seen, 20)

	_, err = Run(context.Background(), l, dataset.XOR(), Config{Shuffle: true})
	assert.Error(t, err)
}

func TestRun_PropagatesTrainError(t *testing.T) {
	l := &countingLearner{failAt: 6}
	history, err := Run(context.Background(), l, dataset.XOR(), Config{Epochs: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch 2")
	assert.Len(t, history, 1)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := &countingLearner{cancel: cancel}
	history, err := Run(ctx, l, dataset.XOR(), Config{Epochs: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history)
	assert.Len(t, l.seen, 2)
}

func TestRun_Empty(t *testing.T) {
	_, err := Run(context.Background(), &countingLearner{}, &dataset.Dataset{}, Config{})
	assert.ErrorIs(t, err, dataset.ErrEmpty)

	_, err = Evaluate(nil, &dataset.Dataset{})
	assert.ErrorIs(t, err, dataset.ErrEmpty)
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	_, err := Run(context.Background(), &countingLearner{}, dataset.XOR(), Config{Epochs: 5, Logger: logger, LogEvery: 2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // epochs 2, 4 and the final one
	assert.True(t, strings.HasPrefix(lines[0], "epoch 2/5"))
	assert.True(t, strings.HasPrefix(lines[2], "epoch 5/5"))
}

func TestRun_PerceptronLearnsOR(t *testing.T) {
	p, err := mlp.New(2, 4, 1, 0.5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, p.SelectActivation(activation.Sigmoid))

	d := orDataset()
	before, err := Evaluate(p, d)
	require.NoError(t, err)

	history, err := Run(context.Background(), p, d, Config{Epochs: 2000, Shuffle: true, Rand: rand.New(rand.NewSource(2))})
	require.NoError(t, err)
	require.Len(t, history, 2000)

	after, err := Evaluate(p, d)
	require.NoError(t, err)
	assert.Less(t, after, before)
	assert.Less(t, after, 0.2)
	assert.Less(t, history[len(history)-1], history[0])
}

func TestEvaluate_ShapeMismatch(t *testing.T) {
	p, err := mlp.New(3, 2, 1, 0.1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, p.SelectActivation(activation.ReLU))

	_, err = Evaluate(p, dataset.XOR())
	assert.Error(t, err)
}
