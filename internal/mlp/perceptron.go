// Package mlp implements a multi-layer perceptron with a single hidden layer,
// trained online by backpropagation.
package mlp

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/born-ml/perceptron/internal/activation"
	"github.com/born-ml/perceptron/internal/matrix"
)

// Parameter names used by StateDict.
const (
	WeightsInputHidden  = "weights_ih"
	WeightsHiddenOutput = "weights_ho"
	BiasHidden          = "bias_h"
	BiasOutput          = "bias_o"
)

// binding is the pair of unary transforms applied element-wise.
// It is replaced as a whole so the two functions always belong together.
type binding struct {
	kind       activation.Kind // zero for custom transforms
	activate   func(float64) float64
	derivative func(float64) float64
}

// Perceptron is a fully connected network: input → hidden → output.
//
// Weights and biases are owned by the perceptron, keep the shapes fixed at
// construction and change only through Train. A Perceptron must not be
// trained concurrently with another Train or Infer call on the same value.
//
// Example:
//
//	p, err := mlp.New(2, 4, 1, 0.1, rand.New(rand.NewSource(1)))
//	if err != nil { ... }
//	if err := p.SelectActivation(activation.Sigmoid); err != nil { ... }
//	for range 1000 {
//	    _ = p.Train([]float64{1, 0}, []float64{1})
//	}
//	out, _ := p.Infer([]float64{1, 0})
type Perceptron struct {
	inputNodes  int
	hiddenNodes int
	outputNodes int

	weightsIH *matrix.Matrix // [hidden, input]
	weightsHO *matrix.Matrix // [output, hidden]
	biasH     *matrix.Matrix // [hidden, 1]
	biasO     *matrix.Matrix // [output, 1]

	learningRate     float64
	lastAverageError float64

	fn atomic.Pointer[binding]
}

// New creates a perceptron with randomly initialized weights and biases.
//
// Parameters:
//   - inputNodes, hiddenNodes, outputNodes: layer sizes (must be > 0)
//   - learningRate: step size applied to every gradient
//   - rng: random source for initialization; callers fix the seed for
//     reproducible models
//
// No activation is bound; call SelectActivation or BindActivation before
// Infer or Train.
func New(inputNodes, hiddenNodes, outputNodes int, learningRate float64, rng *rand.Rand) (*Perceptron, error) {
	if rng == nil {
		return nil, ErrNilRand
	}

	weightsIH, err := matrix.New(hiddenNodes, inputNodes)
	if err != nil {
		return nil, fmt.Errorf("input-hidden weights: %w", err)
	}
	weightsHO, err := matrix.New(outputNodes, hiddenNodes)
	if err != nil {
		return nil, fmt.Errorf("hidden-output weights: %w", err)
	}
	biasH, err := matrix.New(hiddenNodes, 1)
	if err != nil {
		return nil, fmt.Errorf("hidden bias: %w", err)
	}
	biasO, err := matrix.New(outputNodes, 1)
	if err != nil {
		return nil, fmt.Errorf("output bias: %w", err)
	}

	weightsIH.Randomize(rng)
	weightsHO.Randomize(rng)
	biasH.Randomize(rng)
	biasO.Randomize(rng)

	return &Perceptron{
		inputNodes:   inputNodes,
		hiddenNodes:  hiddenNodes,
		outputNodes:  outputNodes,
		weightsIH:    weightsIH,
		weightsHO:    weightsHO,
		biasH:        biasH,
		biasO:        biasO,
		learningRate: learningRate,
	}, nil
}

// SelectActivation binds one of the built-in activation functions with
// gain 1 and center 0. On error the previous binding is kept.
func (p *Perceptron) SelectActivation(kind activation.Kind) error {
	s, err := activation.For(kind)
	if err != nil {
		return err
	}
	p.fn.Store(&binding{
		kind:       kind,
		activate:   func(x float64) float64 { return s.Activate(x, 1, 0) },
		derivative: func(x float64) float64 { return s.Derivative(x, 1) },
	})
	return nil
}

// BindActivation binds arbitrary activation and derivative transforms.
// The derivative receives the same value Train passes to built-in
// strategies: the activated output of each layer.
func (p *Perceptron) BindActivation(activate, derivative func(float64) float64) error {
	if activate == nil || derivative == nil {
		return ErrNilActivation
	}
	p.fn.Store(&binding{activate: activate, derivative: derivative})
	return nil
}

// Kind returns the bound built-in activation kind, or zero when the
// activation is unbound or custom.
func (p *Perceptron) Kind() activation.Kind {
	if b := p.fn.Load(); b != nil {
		return b.kind
	}
	return 0
}

// Dims returns the input, hidden and output layer sizes.
func (p *Perceptron) Dims() (inputNodes, hiddenNodes, outputNodes int) {
	return p.inputNodes, p.hiddenNodes, p.outputNodes
}

// LearningRate returns the learning rate fixed at construction.
func (p *Perceptron) LearningRate() float64 {
	return p.learningRate
}

// LastAverageError returns the mean absolute output error of the most
// recent successful Train call.
func (p *Perceptron) LastAverageError() float64 {
	return p.lastAverageError
}

// StateDict returns deep copies of the weights and biases keyed by name.
func (p *Perceptron) StateDict() map[string]*matrix.Matrix {
	return map[string]*matrix.Matrix{
		WeightsInputHidden:  p.weightsIH.Clone(),
		WeightsHiddenOutput: p.weightsHO.Clone(),
		BiasHidden:          p.biasH.Clone(),
		BiasOutput:          p.biasO.Clone(),
	}
}

// Infer runs a forward pass and returns the output layer activations.
//
// Returns ErrNoActivation if no activation is bound, or a *matrix.ShapeError
// if len(inputs) differs from the input layer size.
func (p *Perceptron) Infer(inputs []float64) ([]float64, error) {
	b := p.fn.Load()
	if b == nil {
		return nil, ErrNoActivation
	}
	x, err := matrix.FromArray(inputs)
	if err != nil {
		return nil, err
	}
	_, outputs, err := p.forward(b, x)
	if err != nil {
		return nil, err
	}
	return outputs.ToArray(), nil
}

// forward computes the hidden and output activations for column vector x.
func (p *Perceptron) forward(b *binding, x *matrix.Matrix) (hidden, outputs *matrix.Matrix, err error) {
	hidden, err = matrix.Multiply(p.weightsIH, x)
	if err != nil {
		return nil, nil, err
	}
	if err = hidden.Add(p.biasH); err != nil {
		return nil, nil, err
	}
	hidden.Map(b.activate)

	outputs, err = matrix.Multiply(p.weightsHO, hidden)
	if err != nil {
		return nil, nil, err
	}
	if err = outputs.Add(p.biasO); err != nil {
		return nil, nil, err
	}
	outputs.Map(b.activate)

	return hidden, outputs, nil
}

// Train performs one stochastic gradient descent step on a single example.
//
// Every quantity is computed before the first weight is touched, so an
// error (unbound activation or mismatched lengths) leaves the perceptron
// unchanged. The hidden-layer error is propagated through the
// hidden-output weights as they were before this step.
func (p *Perceptron) Train(inputs, targets []float64) error {
	b := p.fn.Load()
	if b == nil {
		return ErrNoActivation
	}

	x, err := matrix.FromArray(inputs)
	if err != nil {
		return err
	}
	hidden, outputs, err := p.forward(b, x)
	if err != nil {
		return err
	}

	y, err := matrix.FromArray(targets)
	if err != nil {
		return err
	}

	outputErrors, err := matrix.Subtract(y, outputs)
	if err != nil {
		return err
	}
	averageError := outputErrors.Abs().Average()

	outputGradient := matrix.Map(outputs, b.derivative)
	if err = outputGradient.MultiplyElem(outputErrors); err != nil {
		return err
	}
	outputGradient.Scale(p.learningRate)

	deltaHO, err := matrix.Multiply(outputGradient, matrix.Transpose(hidden))
	if err != nil {
		return err
	}

	hiddenErrors, err := matrix.Multiply(matrix.Transpose(p.weightsHO), outputErrors)
	if err != nil {
		return err
	}

	hiddenGradient := matrix.Map(hidden, b.derivative)
	if err = hiddenGradient.MultiplyElem(hiddenErrors); err != nil {
		return err
	}
	hiddenGradient.Scale(p.learningRate)

	deltaIH, err := matrix.Multiply(hiddenGradient, matrix.Transpose(x))
	if err != nil {
		return err
	}

	// Shapes are fixed, so the in-place updates below cannot fail once the
	// deltas exist.
	if err = p.weightsHO.Add(deltaHO); err != nil {
		return err
	}
	if err = p.biasO.Add(outputGradient); err != nil {
		return err
	}
	if err = p.weightsIH.Add(deltaIH); err != nil {
		return err
	}
	if err = p.biasH.Add(hiddenGradient); err != nil {
		return err
	}

	p.lastAverageError = averageError
	return nil
}
