package mlp

import "errors"

// Configuration errors.
var (
	ErrNoActivation  = errors.New("mlp: no activation function bound")
	ErrNilActivation = errors.New("mlp: activation and derivative must be non-nil")
	ErrNilRand       = errors.New("mlp: random source must be non-nil")
)
