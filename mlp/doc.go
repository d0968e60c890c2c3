// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mlp provides a multi-layer perceptron with one hidden layer.
//
// # Overview
//
// This package contains:
//   - Perceptron: input → hidden → output network trained online by backpropagation
//   - Activation kinds: Sigmoid, HyperbolicTangent, ELU, ReLU
//   - Custom activations via BindActivation
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/perceptron/mlp"
//	)
//
//	func main() {
//	    p, err := mlp.New(2, 4, 1, 0.1, rand.New(rand.NewSource(1)))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := p.SelectActivation(mlp.Sigmoid); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for range 1000 {
//	        if err := p.Train([]float64{1, 0}, []float64{1}); err != nil {
//	            log.Fatal(err)
//	        }
//	    }
//	    out, _ := p.Infer([]float64{1, 0})
//	}
//
// # Derivative Convention
//
// The derivative is evaluated on each layer's activated output. This is the
// exact derivative for Sigmoid and HyperbolicTangent, whose derivatives are
// expressed in terms of their output. ELU and ReLU derivatives are expressed
// in terms of their input and receive the activated value as well.
//
// # Concurrency
//
// A Perceptron must not be used by more than one goroutine while Train is
// running. Independent perceptrons share no state.
package mlp
