package project

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Changes describes what a pipeline run produced, for commit messages.
type Changes struct {
	Language string
	Problem  string
	Features []string
}

// CommitMessage renders a conventional-commit style message for generated
// code updates.
func CommitMessage(changes Changes) string {
	parts := []string{
		"feat: AI-generated code updates",
		"",
		"Generated at: " + time.Now().Format("2006-01-02 15:04:05"),
	}
	if changes.Language != "" {
		parts = append(parts, "Language: "+changes.Language)
	}
	if changes.Problem != "" {
		problem := changes.Problem
		if len(problem) > 100 {
			problem = problem[:100]
		}
		parts = append(parts, "Problem: "+problem+"...")
	}
	if len(changes.Features) > 0 {
		parts = append(parts, "", "Features:")
		for _, feature := range changes.Features {
			parts = append(parts, "- "+feature)
		}
	}
	return strings.Join(parts, "\n")
}

// TestReport summarizes a test run parsed from raw tool output.
type TestReport struct {
	Total    int      `json:"total"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Duration float64  `json:"duration"`
	Failures []string `json:"failures"`
}

var (
	pytestPassed = regexp.MustCompile(`(\d+) passed`)
	pytestFailed = regexp.MustCompile(`(\d+) failed`)
)

// ParseTestResults extracts pass/fail counts from test output. Only pytest
// summaries are recognized; other languages yield a zero report.
func ParseTestResults(output, language string) TestReport {
	var report TestReport
	if strings.ToLower(language) != "python" {
		return report
	}
	if m := pytestPassed.FindStringSubmatch(output); m != nil {
		report.Passed, _ = strconv.Atoi(m[1])
	}
	if m := pytestFailed.FindStringSubmatch(output); m != nil {
		report.Failed, _ = strconv.Atoi(m[1])
	}
	report.Total = report.Passed + report.Failed
	return report
}
