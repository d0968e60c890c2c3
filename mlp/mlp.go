// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp

import (
	"math/rand"

	"github.com/born-ml/perceptron/internal/activation"
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/mlp"
)

// Perceptron is a one-hidden-layer multi-layer perceptron.
type Perceptron = mlp.Perceptron

// New creates a perceptron with weights and biases drawn uniformly from
// [-1, 1) using rng.
//
// Example:
//
//	p, err := mlp.New(2, 4, 1, 0.1, rand.New(rand.NewSource(42)))
func New(inputNodes, hiddenNodes, outputNodes int, learningRate float64, rng *rand.Rand) (*Perceptron, error) {
	return mlp.New(inputNodes, hiddenNodes, outputNodes, learningRate, rng)
}

// Activations

// Kind identifies a built-in activation function.
type Kind = activation.Kind

// Strategy is an activation function with its derivative.
type Strategy = activation.Strategy

// Built-in activation kinds.
const (
	Sigmoid           = activation.Sigmoid
	HyperbolicTangent = activation.HyperbolicTangent
	ELU               = activation.ELU
	ReLU              = activation.ReLU
)

// ParseKind converts a name such as "sigmoid" or "tanh" into a Kind.
func ParseKind(name string) (Kind, error) {
	return activation.ParseKind(name)
}

// StrategyFor returns the built-in strategy for kind.
func StrategyFor(kind Kind) (Strategy, error) {
	return activation.For(kind)
}

// Errors

// ShapeError describes operands whose shapes disagree.
type ShapeError = matrix.ShapeError

var (
	// ErrNoActivation is returned by Infer and Train before an activation is bound.
	ErrNoActivation = mlp.ErrNoActivation

	// ErrNilActivation is returned by BindActivation for nil transforms.
	ErrNilActivation = mlp.ErrNilActivation

	// ErrNilRand is returned by New without a random source.
	ErrNilRand = mlp.ErrNilRand

	// ErrUnknownKind is returned for an activation kind with no strategy.
	ErrUnknownKind = activation.ErrUnknownKind

	// ErrShape matches every shape mismatch reported by Infer and Train.
	ErrShape = matrix.ErrShape

	// ErrInvalidDims is returned by New for non-positive layer sizes.
	ErrInvalidDims = matrix.ErrInvalidDims
)
