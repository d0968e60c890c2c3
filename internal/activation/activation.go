// Package activation implements the scalar activation functions used by the
// perceptron.
//
// Each Strategy provides the activation transform and its derivative,
// parameterized by gain (slope) and center (horizontal shift). Strategies are
// stateless and selected from a Kind through For.
package activation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownKind is returned when a Kind has no registered strategy.
var ErrUnknownKind = errors.New("unknown activation kind")

// Kind identifies a built-in activation function.
// The zero value means "no activation selected".
type Kind int

// Built-in activation kinds.
const (
	Sigmoid Kind = iota + 1
	HyperbolicTangent
	ELU // Exponential Linear Unit
	ReLU
)

// Kinds lists every built-in activation kind.
func Kinds() []Kind {
	return []Kind{Sigmoid, HyperbolicTangent, ELU, ReLU}
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Sigmoid:
		return "sigmoid"
	case HyperbolicTangent:
		return "tanh"
	case ELU:
		return "elu"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a name (as returned by String) into a Kind.
// Matching is case-insensitive; "hyperbolictangent" is accepted for tanh.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid":
		return Sigmoid, nil
	case "tanh", "hyperbolictangent":
		return HyperbolicTangent, nil
	case "elu":
		return ELU, nil
	case "relu":
		return ReLU, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Strategy is an activation function together with its derivative.
type Strategy interface {
	// Activate applies the function to x shifted by center.
	Activate(x, gain, center float64) float64

	// Derivative returns the slope used during backpropagation.
	//
	// For Sigmoid and HyperbolicTangent, x is the already-activated output.
	// For ELU and ReLU, x is the pre-activation value.
	Derivative(x, gain float64) float64
}

// For returns the strategy registered for kind.
func For(kind Kind) (Strategy, error) {
	switch kind {
	case Sigmoid:
		return sigmoid{}, nil
	case HyperbolicTangent:
		return hyperbolicTangent{}, nil
	case ELU:
		return elu{}, nil
	case ReLU:
		return relu{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// sigmoid: σ(x) = 1 / (1 + exp(-(x - center))).
// The derivative identity y(1-y) only holds for gain = 1, so gain is ignored.
type sigmoid struct{}

func (sigmoid) Activate(x, _, center float64) float64 {
	return 1 / (1 + math.Exp(-(x - center)))
}

func (sigmoid) Derivative(y, _ float64) float64 {
	return y * (1 - y)
}

// hyperbolicTangent: tanh written as 2/(1 + exp(-2(x - center))) - 1.
type hyperbolicTangent struct{}

func (hyperbolicTangent) Activate(x, _, center float64) float64 {
	return 2/(1+math.Exp(-2*(x-center))) - 1
}

func (hyperbolicTangent) Derivative(y, _ float64) float64 {
	return 1 - y*y
}

// elu: x - center for non-negative input, gain·(exp(x - center) - 1) otherwise.
type elu struct{}

func (elu) Activate(x, gain, center float64) float64 {
	xc := x - center
	if xc >= 0 {
		return xc
	}
	return gain * (math.Exp(xc) - 1)
}

func (elu) Derivative(x, gain float64) float64 {
	if gain < 0 {
		return 0
	}
	if x >= 0 {
		return 1
	}
	return x + gain
}

// relu: max((x - center)·gain, 0).
type relu struct{}

func (relu) Activate(x, gain, center float64) float64 {
	return math.Max((x-center)*gain, 0)
}

func (relu) Derivative(x, gain float64) float64 {
	if x >= 0 {
		return gain
	}
	return 0
}
