package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/logger"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/observability"
)

type trainOptions struct {
	output  string
	samples int
	epochs  int
	seed    uint64
	version string
}

func newTrainCmd(root *rootOptions) *cobra.Command {
	defaults := model.DefaultTrainConfig()
	opts := &trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the learned ranking model",
		Long:  "Fits a logistic-regression classifier on synthetic user/occupation pairs drawn from the catalog and writes the artifact. The same seed and catalog produce the same weights.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, root, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "out", "o", "", "Artifact path, defaults to model.path")
	flags.IntVar(&opts.samples, "samples", defaults.Samples, "Number of synthetic pairs")
	flags.IntVar(&opts.epochs, "epochs", defaults.Epochs, "Gradient descent epochs")
	flags.Uint64Var(&opts.seed, "seed", defaults.Seed, "Random seed")
	flags.StringVar(&opts.version, "version-tag", defaults.Version, "Version recorded in the artifact")
	return cmd
}

func runTrain(cmd *cobra.Command, root *rootOptions, opts *trainOptions) error {
	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	out := opts.output
	if out == "" {
		out = a.cfg.Model.Path
	}
	if out == "" {
		return fmt.Errorf("no output path: set --out or model.path")
	}

	c, err := a.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	occupations := make([][]float64, 0, c.Len())
	for _, o := range c.Occupations {
		occupations = append(occupations, o.Combined())
	}

	tc := model.DefaultTrainConfig()
	tc.Samples = opts.samples
	tc.Epochs = opts.epochs
	tc.Seed = opts.seed
	tc.Version = opts.version

	a.log.Info("training model",
		zap.Int("occupations", len(occupations)),
		zap.Int("samples", tc.Samples),
		zap.Uint64("seed", tc.Seed),
	)
	artifact, err := model.Train(cmd.Context(), occupations, tc)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := model.NewFileStore(out).Save(cmd.Context(), artifact); err != nil {
		return err
	}
	logger.WithFields(a.log, zap.String(logger.FieldModelVersion, artifact.Version)).
		Info("model saved", zap.String("path", out), zap.Float64("test_accuracy", artifact.Metrics["test_accuracy"]))

	observability.NewPrinter(cmd.OutOrStdout()).PrintModel(artifact)
	return nil
}
