package model

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jonathan/fairpath/internal/vector"
)

// TrainConfig controls synthetic data generation and gradient descent
type TrainConfig struct {
	Samples      int
	TestFraction float64
	Epochs       int
	LearningRate float64
	L2           float64
	Noise        float64
	Seed         uint64
	Version      string
}

// DefaultTrainConfig returns the settings used by the train command.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Samples:      1000,
		TestFraction: 0.2,
		Epochs:       500,
		LearningRate: 0.1,
		L2:           0.001,
		Noise:        0.1,
		Seed:         42,
		Version:      "1.0.0",
	}
}

// Train fits a logistic-regression artifact on synthetic user/occupation pairs.
//
// Each sample picks an occupation at random. Positive samples perturb the
// occupation vector with Gaussian noise; negative samples draw a uniform random
// user vector. Features are standardized before fitting. The same config and
// inputs always produce the same artifact apart from TrainedAt.
func Train(ctx context.Context, occupations [][]float64, cfg TrainConfig) (*Artifact, error) {
	if len(occupations) == 0 {
		return nil, errors.New("no occupations to train on")
	}
	if cfg.Samples < 10 {
		return nil, fmt.Errorf("need at least 10 samples, got %d", cfg.Samples)
	}
	dim := len(occupations[0])
	for i, o := range occupations {
		if len(o) != dim {
			return nil, fmt.Errorf("occupation %d has %d features, want %d", i, len(o), dim)
		}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	X, y := synthesize(rng, occupations, cfg)

	nTest := int(float64(len(X)) * cfg.TestFraction)
	perm := rng.Perm(len(X))
	trainX, trainY := make([][]float64, 0, len(X)-nTest), make([]float64, 0, len(X)-nTest)
	testX, testY := make([][]float64, 0, nTest), make([]float64, 0, nTest)
	for i, idx := range perm {
		if i < nTest {
			testX, testY = append(testX, X[idx]), append(testY, y[idx])
			continue
		}
		trainX, trainY = append(trainX, X[idx]), append(trainY, y[idx])
	}

	mean, std := fitScaler(trainX)
	a := &Artifact{
		Version:    cfg.Version,
		Weights:    make([]float64, len(mean)),
		ScalerMean: mean,
		ScalerStd:  std,
	}
	scaledTrain := scaleAll(a, trainX)

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gradientStep(a, scaledTrain, trainY, cfg.LearningRate, cfg.L2)
	}

	a.TrainedAt = time.Now().UTC()
	a.Metrics = map[string]float64{
		"train_accuracy": accuracy(a, trainX, trainY),
		"train_samples":  float64(len(trainX)),
	}
	if len(testX) > 0 {
		a.Metrics["test_accuracy"] = accuracy(a, testX, testY)
		a.Metrics["test_samples"] = float64(len(testX))
	}
	return a, a.Validate()
}

func synthesize(rng *rand.Rand, occupations [][]float64, cfg TrainConfig) ([][]float64, []float64) {
	X := make([][]float64, 0, cfg.Samples)
	y := make([]float64, 0, cfg.Samples)
	for i := 0; i < cfg.Samples; i++ {
		target := occupations[rng.IntN(len(occupations))]
		positive := rng.Float64() > 0.5

		user := make([]float64, len(target))
		for j, t := range target {
			if positive {
				user[j] = vector.Clamp01(t + rng.NormFloat64()*cfg.Noise)
			} else {
				user[j] = rng.Float64()
			}
		}

		X = append(X, Features(user, target))
		if positive {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return X, y
}

// fitScaler computes per-feature mean and population standard deviation.
func fitScaler(X [][]float64) (mean, std []float64) {
	dim := len(X[0])
	mean = make([]float64, dim)
	std = make([]float64, dim)
	col := make([]float64, len(X))
	for j := 0; j < dim; j++ {
		for i, row := range X {
			col[i] = row[j]
		}
		mean[j], std[j] = stat.PopMeanStdDev(col, nil)
	}
	return mean, std
}

func scaleAll(a *Artifact, X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = a.Scale(row)
	}
	return out
}

func gradientStep(a *Artifact, X [][]float64, y []float64, lr, l2 float64) {
	grad := make([]float64, len(a.Weights))
	var gradB float64
	for i, row := range X {
		e := vector.Sigmoid(vector.Dot(a.Weights, row)+a.Intercept) - y[i]
		floats.AddScaled(grad, e, row)
		gradB += e
	}
	n := float64(len(X))
	// w -= lr * (grad/n + l2*w)
	floats.Scale(1-lr*l2, a.Weights)
	floats.AddScaled(a.Weights, -lr/n, grad)
	a.Intercept -= lr * gradB / n
}

func accuracy(a *Artifact, X [][]float64, y []float64) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, row := range X {
		p, err := a.Predict(row)
		if err != nil {
			continue
		}
		if (p >= 0.5) == (y[i] == 1) {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}
