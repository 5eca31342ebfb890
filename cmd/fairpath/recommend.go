package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/fairpath/internal/observability"
	"github.com/jonathan/fairpath/internal/recommend"
	"github.com/jonathan/fairpath/internal/schemas"
	"github.com/jonathan/fairpath/internal/types"
	embedded "github.com/jonathan/fairpath/schemas"
)

type recommendOptions struct {
	profile     string
	skills      []string
	interests   map[string]string
	values      map[string]string
	constraints map[string]string
	top         int
	useModel    bool
	json        bool
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank occupations for a profile",
		Long:  "Ranks catalog occupations against skills, interest ratings and work-value ratings (0-7) and explains each match.",
		Example: `  fairpath recommend --skills Writing,Mathematics --interest Investigative=6 --value Independence=5
  fairpath recommend --profile profile.json --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.profile, "profile", "p", "", "Path to a request JSON file; flags are merged on top")
	flags.StringSliceVarP(&opts.skills, "skills", "s", nil, "Skill names, comma separated")
	flags.StringToStringVar(&opts.interests, "interest", nil, "Interest rating as Name=score")
	flags.StringToStringVar(&opts.values, "value", nil, "Work value rating as Name=score")
	flags.StringToStringVar(&opts.constraints, "constraint", nil, "Constraint as key=value (min_wage, max_education_level)")
	flags.IntVarP(&opts.top, "top", "n", 0, "Number of recommendations (default 10, minimum 3)")
	flags.BoolVar(&opts.useModel, "use-model", false, "Score with the learned model when available")
	flags.BoolVar(&opts.json, "json", false, "Print the response as JSON")
	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	resp, err := svc.Recommend(cmd.Context(), req)
	if err != nil {
		var demographic *types.DemographicInputError
		if errors.As(err, &demographic) && !opts.json {
			observability.NewPrinter(cmd.OutOrStdout()).PrintDemographicIssues(demographic.Issues)
		}
		return err
	}

	if opts.json {
		return writeJSON(cmd, resp)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecommendations(resp)
	return nil
}

// request merges the optional profile file with the command-line flags.
func (o *recommendOptions) request() (recommend.Request, error) {
	var req recommend.Request
	if o.profile != "" {
		if err := schemas.ValidateFile(embedded.RecommendRequest, o.profile); err != nil {
			return req, fmt.Errorf("invalid profile %s: %w", o.profile, err)
		}
		data, err := os.ReadFile(o.profile)
		if err != nil {
			return req, fmt.Errorf("failed to read profile %s: %w", o.profile, err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("failed to parse profile %s: %w", o.profile, err)
		}
	}

	req.Skills = append(req.Skills, o.skills...)

	var err error
	if req.Interests, err = mergeRatings(req.Interests, o.interests, "interest"); err != nil {
		return req, err
	}
	if req.Values, err = mergeRatings(req.Values, o.values, "value"); err != nil {
		return req, err
	}

	if len(o.constraints) > 0 && req.Constraints == nil {
		req.Constraints = make(map[string]any, len(o.constraints))
	}
	for k, v := range o.constraints {
		req.Constraints[k] = v
	}

	if o.top > 0 {
		req.TopN = o.top
	}
	req.UseModel = req.UseModel || o.useModel
	return req, nil
}

func mergeRatings(dst map[string]float64, raw map[string]string, kind string) (map[string]float64, error) {
	if len(raw) == 0 {
		return dst, nil
	}
	if dst == nil {
		dst = make(map[string]float64, len(raw))
	}
	for name, s := range raw {
		score, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s rating %s=%s: %w", kind, name, s, err)
		}
		if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 7 {
			return nil, fmt.Errorf("%s rating %s=%s is outside 0-7", kind, name, s)
		}
		dst[name] = score
	}
	return dst, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
