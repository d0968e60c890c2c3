// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/perceptron/mlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPublicAPI exercises the exported surface end to end.
func TestPublicAPI(t *testing.T) {
	p, err := mlp.New(2, 4, 1, 0.1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = p.Infer([]float64{1, 0})
	assert.ErrorIs(t, err, mlp.ErrNoActivation)

	for _, name := range []string{"sigmoid", "tanh", "elu", "relu"} {
		t.Run(name, func(t *testing.T) {
			kind, err := mlp.ParseKind(name)
			require.NoError(t, err)
			require.NoError(t, p.SelectActivation(kind))

			out, err := p.Infer([]float64{1, 0})
			require.NoError(t, err)
			assert.Len(t, out, 1)
		})
	}

	require.NoError(t, p.SelectActivation(mlp.Sigmoid))
	require.NoError(t, p.Train([]float64{1, 0}, []float64{1}))
	assert.Positive(t, p.LastAverageError())

	err = p.Train([]float64{1, 0}, []float64{1, 1})
	var shapeErr *mlp.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
	assert.ErrorIs(t, err, mlp.ErrShape)
}

func TestStrategyFor(t *testing.T) {
	s, err := mlp.StrategyFor(mlp.Sigmoid)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Activate(0, 1, 0), 1e-12)

	s, err = mlp.StrategyFor(mlp.ReLU)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Activate(-3, 1, 0))
	assert.Equal(t, 2.0, s.Derivative(5, 2))

	_, err = mlp.StrategyFor(mlp.Kind(0))
	assert.ErrorIs(t, err, mlp.ErrUnknownKind)
}
