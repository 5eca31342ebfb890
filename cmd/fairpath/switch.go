package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fairpath/internal/observability"
)

type switchOptions struct {
	from string
	to   string
	json bool
}

func newSwitchCmd(root *rootOptions) *cobra.Command {
	opts := &switchOptions{}
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Analyze a career switch between two occupations",
		Long:  "Reports skill overlap, transferable and missing skills, difficulty, time estimate and success factors for moving from one occupation to another.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSwitch(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "Source career id (required)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target career id (required)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as JSON")

	if err := cmd.MarkFlagRequired("from"); err != nil {
		panic(fmt.Sprintf("failed to mark from flag as required: %v", err))
	}
	if err := cmd.MarkFlagRequired("to"); err != nil {
		panic(fmt.Sprintf("failed to mark to flag as required: %v", err))
	}
	return cmd
}

func runSwitch(cmd *cobra.Command, root *rootOptions, opts *switchOptions) error {
	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	report, err := svc.AnalyzeTransition(cmd.Context(), opts.from, opts.to)
	if err != nil {
		return err
	}

	if opts.json {
		return writeJSON(cmd, report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTransition(report)
	return nil
}
