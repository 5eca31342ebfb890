// Package model holds the learned ranking classifier: its artifact format, storage, lifecycle and training.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/fairpath/internal/vector"
)

// ErrCorruptArtifact marks an artifact whose parameters are inconsistent
var ErrCorruptArtifact = errors.New("corrupt model artifact")

// Artifact is a trained logistic-regression classifier with its feature scaler
type Artifact struct {
	Version    string             `json:"version"`
	Weights    []float64          `json:"weights"`
	Intercept  float64            `json:"intercept"`
	ScalerMean []float64          `json:"scaler_mean"`
	ScalerStd  []float64          `json:"scaler_std"`
	TrainedAt  time.Time          `json:"trained_at"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Dim returns the feature dimension the artifact expects.
func (a *Artifact) Dim() int {
	return len(a.Weights)
}

// Validate checks that weights and scaler statistics agree in length and are finite.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("%w: missing version", ErrCorruptArtifact)
	}
	if len(a.Weights) == 0 {
		return fmt.Errorf("%w: no weights", ErrCorruptArtifact)
	}
	if len(a.ScalerMean) != len(a.Weights) || len(a.ScalerStd) != len(a.Weights) {
		return fmt.Errorf("%w: weights=%d scaler_mean=%d scaler_std=%d",
			ErrCorruptArtifact, len(a.Weights), len(a.ScalerMean), len(a.ScalerStd))
	}
	if !vector.AllFinite(a.Weights) || !vector.AllFinite(a.ScalerMean) || !vector.AllFinite([]float64{a.Intercept}) {
		return fmt.Errorf("%w: non-finite parameters", ErrCorruptArtifact)
	}
	return nil
}

// CheckDim returns an error when the artifact cannot score vectors of length dim.
func (a *Artifact) CheckDim(dim int) error {
	if a.Dim() != dim {
		return fmt.Errorf("%w: expects %d features, scoring vectors have %d", ErrCorruptArtifact, a.Dim(), dim)
	}
	return nil
}

// Scale standardizes x with the artifact's scaler. A zero or non-finite
// standard deviation leaves that dimension unscaled (divisor 1).
func (a *Artifact) Scale(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		std := a.ScalerStd[i]
		if std == 0 || !vector.AllFinite([]float64{std}) {
			std = 1
		}
		out[i] = (v - a.ScalerMean[i]) / std
	}
	return out
}

// Predict returns the positive-class probability for feature vector x.
func (a *Artifact) Predict(x []float64) (float64, error) {
	if err := a.CheckDim(len(x)); err != nil {
		return 0, err
	}
	z := vector.Dot(a.Weights, a.Scale(x)) + a.Intercept
	return vector.Sigmoid(z), nil
}
