// Package main provides the perceptron training CLI.
//
// Usage:
//
//	mlp [flags]            train on XOR (or -data file.csv) and print predictions
//	mlp -compare [flags]   train one model per activation kind concurrently
//	mlp version            print the version
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/born-ml/perceptron/internal/activation"
	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/born-ml/perceptron/internal/parallel"
	"github.com/born-ml/perceptron/internal/train"
)

const version = "v0.1.0-dev"

type config struct {
	dataPath   string
	numInputs  int
	header     bool
	normalize  bool
	hidden     int
	lr         float64
	epochs     int
	activation string
	seed       int64
	shuffle    bool
	compare    bool
	workers    int
	logEvery   int
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("perceptron %s\n", version)
		return
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var cfg config
	flag.StringVar(&cfg.dataPath, "data", "", "CSV file of samples (default: built-in XOR)")
	flag.IntVar(&cfg.numInputs, "inputs", 2, "Number of leading CSV columns used as inputs")
	flag.BoolVar(&cfg.header, "header", false, "Skip the first CSV row")
	flag.BoolVar(&cfg.normalize, "normalize", false, "Rescale input columns to [0, 1]")
	flag.IntVar(&cfg.hidden, "hidden", 4, "Number of hidden nodes")
	flag.Float64Var(&cfg.lr, "lr", 0.1, "Learning rate")
	flag.IntVar(&cfg.epochs, "epochs", 5000, "Number of training epochs")
	flag.StringVar(&cfg.activation, "activation", "sigmoid", "Activation function: sigmoid, tanh, elu, relu")
	flag.Int64Var(&cfg.seed, "seed", 1, "Random seed for weights and shuffling")
	flag.BoolVar(&cfg.shuffle, "shuffle", true, "Shuffle samples every epoch")
	flag.BoolVar(&cfg.compare, "compare", false, "Train one model per activation kind and compare")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "Concurrent models in -compare mode")
	flag.IntVar(&cfg.logEvery, "log-every", 1000, "Log training error every N epochs")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("mlp: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	d, err := loadData(cfg)
	if err != nil {
		return err
	}
	log.Printf("loaded %d samples (%d inputs, %d outputs)", d.Len(), d.Inputs, d.Outputs)

	if cfg.compare {
		return compare(ctx, cfg, d)
	}

	kind, err := activation.ParseKind(cfg.activation)
	if err != nil {
		return err
	}
	p, err := fit(ctx, cfg, d, kind, cfg.seed, log.Default())
	if err != nil {
		return err
	}

	for _, s := range d.Samples {
		out, err := p.Infer(s.Inputs)
		if err != nil {
			return err
		}
		fmt.Printf("%v -> %s (target %v)\n", s.Inputs, formatOutputs(out), s.Targets)
	}
	return nil
}

func loadData(cfg config) (*dataset.Dataset, error) {
	if cfg.dataPath == "" {
		return dataset.XOR(), nil
	}
	d, err := dataset.LoadCSVFile(cfg.dataPath, cfg.numInputs, cfg.header)
	if err != nil {
		return nil, err
	}
	if cfg.normalize {
		d.Normalize()
	}
	return d, nil
}

// fit builds a perceptron for d and trains it with the given activation.
func fit(ctx context.Context, cfg config, d *dataset.Dataset, kind activation.Kind, seed int64, logger *log.Logger) (*mlp.Perceptron, error) {
	rng := rand.New(rand.NewSource(seed))

	p, err := mlp.New(d.Inputs, cfg.hidden, d.Outputs, cfg.lr, rng)
	if err != nil {
		return nil, err
	}
	if err := p.SelectActivation(kind); err != nil {
		return nil, err
	}

	_, err = train.Run(ctx, p, d, train.Config{
		Epochs:   cfg.epochs,
		Shuffle:  cfg.shuffle,
		Rand:     rng,
		Logger:   logger,
		LogEvery: cfg.logEvery,
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", kind, err)
	}
	return p, nil
}

// compare trains one model per activation kind, each with its own random
// source, and prints the final mean absolute error of each.
func compare(ctx context.Context, cfg config, d *dataset.Dataset) error {
	kinds := activation.Kinds()
	results := make([]float64, len(kinds))

	pcfg := parallel.DefaultConfig()
	pcfg.NumWorkers = cfg.workers

	err := parallel.For(ctx, len(kinds), func(ctx context.Context, i int) error {
		logger := log.New(os.Stderr, fmt.Sprintf("[%v] ", kinds[i]), log.LstdFlags)
		p, err := fit(ctx, cfg, d, kinds[i], cfg.seed+int64(i), logger)
		if err != nil {
			return err
		}
		results[i], err = train.Evaluate(p, d)
		return err
	}, pcfg)
	if err != nil {
		return err
	}

	for i, k := range kinds {
		fmt.Printf("%-8v error=%.6f\n", k, results[i])
	}
	return nil
}

func formatOutputs(out []float64) string {
	parts := make([]string, len(out))
	for i, v := range out {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
