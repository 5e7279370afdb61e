/*
Package benchmark measures recommendation pipeline latency.

It runs a fixed set of representative prompts through context analysis and
the full recommendation pipeline, reporting per-stage timings. Useful for
checking that rule-driven matching stays well under interactive latency
budgets as the skill catalog grows.
*/
package benchmark

import (
	"fmt"
	"time"

	"github.com/hoangnm/skill-advisor/internal/advisor"
	"github.com/hoangnm/skill-advisor/internal/analyzer"
)

// samplePrompts are representative task descriptions across intents and
// domains.
var samplePrompts = []string{
	"optimize my React app for better performance",
	"fix the race condition in the payment worker",
	"write unit tests for the auth middleware",
	"migrate the user table from mysql to postgres",
	"deploy the new release to the kubernetes cluster",
	"explain how the event loop schedules callbacks",
	"refactor the order service into smaller handlers",
	"add prometheus metrics to the ingestion pipeline",
}

// StageResult holds timing for one pipeline stage.
type StageResult struct {
	// Stage names the measured stage.
	Stage string `json:"stage"`

	// Runs is the number of measured executions.
	Runs int `json:"runs"`

	// TotalMillis is the summed wall time.
	TotalMillis float64 `json:"totalMillis"`

	// MeanMillis is the average wall time per execution.
	MeanMillis float64 `json:"meanMillis"`

	// MaxMillis is the slowest single execution.
	MaxMillis float64 `json:"maxMillis"`
}

// Report contains all stage results.
type Report struct {
	// SkillCount is the candidate set size during the run.
	SkillCount int `json:"skillCount"`

	// Stages are the per-stage timings.
	Stages []StageResult `json:"stages"`
}

// Run measures analysis and full recommendation latency over the sample
// prompts. Each prompt is executed `rounds` times per stage.
func Run(a *advisor.Advisor, rounds int) (*Report, error) {
	if rounds <= 0 {
		rounds = 3
	}

	report := &Report{SkillCount: len(a.Skills())}

	analyzeStage := measureStage("analyze", rounds, func(prompt string) error {
		analyzer.Analyze(prompt)
		return nil
	})
	report.Stages = append(report.Stages, analyzeStage)

	recommendStage := measureStage("recommend", rounds, func(prompt string) error {
		_, err := a.Recommend(prompt, "")
		return err
	})
	report.Stages = append(report.Stages, recommendStage)

	for _, stage := range report.Stages {
		if stage.Runs == 0 {
			return nil, fmt.Errorf("stage %s recorded no runs", stage.Stage)
		}
	}

	return report, nil
}

// measureStage times fn across every sample prompt for the given rounds.
// Failed executions are skipped rather than aborting the run.
func measureStage(name string, rounds int, fn func(prompt string) error) StageResult {
	result := StageResult{Stage: name}

	for round := 0; round < rounds; round++ {
		for _, prompt := range samplePrompts {
			start := time.Now()
			if err := fn(prompt); err != nil {
				continue
			}
			elapsed := float64(time.Since(start).Microseconds()) / 1000.0

			result.Runs++
			result.TotalMillis += elapsed
			if elapsed > result.MaxMillis {
				result.MaxMillis = elapsed
			}
		}
	}

	if result.Runs > 0 {
		result.MeanMillis = result.TotalMillis / float64(result.Runs)
	}

	return result
}

// Format renders a report for terminal output.
func Format(report *Report) string {
	out := fmt.Sprintf("Pipeline benchmark (%d candidate skills)\n\n", report.SkillCount)
	for _, stage := range report.Stages {
		out += fmt.Sprintf("  %-10s %4d runs  mean %8.3fms  max %8.3fms\n",
			stage.Stage, stage.Runs, stage.MeanMillis, stage.MaxMillis)
	}
	return out
}
