// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/recommend"
	"github.com/jonathan/fairpath/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func wage(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	return "$" + humanize.Comma(int64(v))
}

// PrintCatalogSummary outputs the dataset version and sizes.
func (p *Printer) PrintCatalogSummary(s catalog.Summary) {
	content := fmt.Sprintf("Version:      %s\nSkills:       %d\nOccupations:  %d",
		s.Version, s.NumSkills, s.NumOccupations)
	p.printBox("CATALOG", content)
}

// PrintModel outputs a trained artifact's version, size and metrics.
func (p *Printer) PrintModel(a *model.Artifact) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:   %s\n", a.Version))
	sb.WriteString(fmt.Sprintf("Features:  %d\n", a.Dim()))
	if !a.TrainedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Trained:   %s\n", humanize.Time(a.TrainedAt)))
	}

	if len(a.Metrics) > 0 {
		names := make([]string, 0, len(a.Metrics))
		for name := range a.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("\nMetrics:\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  • %-16s %.4g\n", name, a.Metrics[name]))
		}
	}

	p.printBox("MODEL ARTIFACT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs ranked occupations with their top reasons.
func (p *Printer) PrintRecommendations(resp *recommend.Response) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Method: %s", resp.Method))
	if resp.ModelVersion != "" {
		sb.WriteString(fmt.Sprintf(" (model %s)", resp.ModelVersion))
	}
	sb.WriteString(fmt.Sprintf("\nDataset: %s   Input: %s\n", resp.DatasetVersion, resp.InputQuality))
	if len(resp.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Matched skills: %s\n", strings.Join(resp.MatchedSkills, ", ")))
	}

	if len(resp.Recommendations) == 0 {
		sb.WriteString("\nNo occupations satisfy the constraints.")
		p.printBox("RECOMMENDATIONS", sb.String())
		return
	}
	sb.WriteString("\n")

	for i, r := range resp.Recommendations {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  %s", r.Score, r.Confidence))
		if r.ScoreRange != nil {
			sb.WriteString(fmt.Sprintf("  [%.2f-%.2f]", r.ScoreRange.Min, r.ScoreRange.Max))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Wage: %s  Growth: %+.1f%%\n", wage(r.Outlook.MedianWage), r.Outlook.GrowthRate))
		if len(r.Explanation.WhyPoints) > 0 {
			sb.WriteString(fmt.Sprintf("    Why: %s\n", r.Explanation.WhyPoints[0]))
		}
		if i < len(resp.Recommendations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTransition outputs a career-switch report.
func (p *Printer) PrintTransition(report *types.TransitionReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From:        %s\n", report.SourceCareer.Name))
	sb.WriteString(fmt.Sprintf("To:          %s\n", report.TargetCareer.Name))
	sb.WriteString(fmt.Sprintf("Overlap:     %.1f%%\n", report.SkillOverlap.Percentage))
	sb.WriteString(fmt.Sprintf("Difficulty:  %s\n", report.Difficulty))
	sb.WriteString(fmt.Sprintf("Time:        %s\n", report.TransitionTime.Range))
	sb.WriteString("\n")

	writeSkills(&sb, "Transfers directly", report.TransferMap.TransfersDirectly)
	writeSkills(&sb, "Needs learning", report.TransferMap.NeedsLearning)

	assessment := report.SuccessRiskAssessment
	for _, f := range assessment.SuccessFactors {
		sb.WriteString(fmt.Sprintf("+ %s\n", f.Factor))
	}
	for _, f := range assessment.RiskFactors {
		sb.WriteString(fmt.Sprintf("- %s\n", f.Factor))
	}
	sb.WriteString(fmt.Sprintf("\nOverall: %s", assessment.OverallAssessment))

	p.printBox("CAREER SWITCH", sb.String())
}

func writeSkills(sb *strings.Builder, label string, items []types.TransferItem) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i].Skill))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintDemographicIssues outputs the inputs that were rejected as demographic.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDemographicIssues(issues []string) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO DEMOGRAPHIC INPUT FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rejected %d inputs:\n\n", len(issues)))
	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s", issue))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DEMOGRAPHIC INPUT", sb.String())
}
