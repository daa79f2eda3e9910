package codetext

import (
	"regexp"
	"strings"
)

// ComplexityMetrics is a rough, regex-derived estimate of code complexity.
// The counts are intentionally language-naive: a "for" inside a string
// literal still counts. Cyclomatic complexity is the simplified McCabe
// approximation 1 + conditionals + loops, never less than 1.
type ComplexityMetrics struct {
	LinesOfCode          int `json:"lines_of_code"`
	Loops                int `json:"loops"`
	Conditionals         int `json:"conditionals"`
	Functions            int `json:"functions"`
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
}

// LineBreakdown classifies every line of a source text into exactly one
// bucket. Total always equals Code + Comments + Empty.
type LineBreakdown struct {
	Total    int `json:"total"`
	Code     int `json:"code"`
	Comments int `json:"comments"`
	Empty    int `json:"empty"`
}

var (
	loopWord        = regexp.MustCompile(`\b(for|while)\b`)
	conditionalWord = regexp.MustCompile(`\bif\b`)
	functionShape   = regexp.MustCompile(`\bdef\b|\bfunction\b|\bpublic\s+\w+\s+\w+\s*\(`)

	pythonDef  = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	cFamilyDef = regexp.MustCompile(`(?:public|private|protected)?\s*\w+\s+(\w+)\s*\(`)
	jsDef      = regexp.MustCompile(`function\s+(\w+)\s*\(|const\s+(\w+)\s*=\s*\(`)
)

// EstimateComplexity computes heuristic complexity metrics for code in any
// language. Lines of code are non-blank lines not starting with a hash.
func EstimateComplexity(code string) ComplexityMetrics {
	var loc int
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			loc++
		}
	}
	loops := len(loopWord.FindAllString(code, -1))
	conditionals := len(conditionalWord.FindAllString(code, -1))
	functions := len(functionShape.FindAllString(code, -1))
	return ComplexityMetrics{
		LinesOfCode:          loc,
		Loops:                loops,
		Conditionals:         conditionals,
		Functions:            functions,
		CyclomaticComplexity: 1 + conditionals + loops,
	}
}

// CountLines splits code on newlines and buckets each line as empty,
// comment (leading # or //), or code. A trailing newline contributes a final
// empty line to the total.
func CountLines(code string) LineBreakdown {
	lines := strings.Split(code, "\n")
	breakdown := LineBreakdown{Total: len(lines)}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			breakdown.Empty++
		case strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//"):
			breakdown.Comments++
		default:
			breakdown.Code++
		}
	}
	return breakdown
}

// FindFunctions extracts function names from code using a per-language
// pattern, in order of first appearance, duplicates preserved. Languages
// without a pattern yield an empty list.
func FindFunctions(code, language string) []string {
	names := []string{}
	switch strings.ToLower(language) {
	case "python":
		for _, m := range pythonDef.FindAllStringSubmatch(code, -1) {
			names = append(names, m[1])
		}
	case "java", "c++", "c#":
		for _, m := range cFamilyDef.FindAllStringSubmatch(code, -1) {
			names = append(names, m[1])
		}
	case "javascript", "typescript":
		for _, m := range jsDef.FindAllStringSubmatch(code, -1) {
			if m[1] != "" {
				names = append(names, m[1])
			} else {
				names = append(names, m[2])
			}
		}
	}
	return names
}

// QualityScore derives a 0-100 score from complexity metrics. High cyclomatic
// complexity and very long functions subtract, docstrings add.
func QualityScore(metrics ComplexityMetrics, hasDocstrings bool, maxFunctionLength int) float64 {
	score := 100.0
	if metrics.CyclomaticComplexity > 10 {
		penalty := float64(metrics.CyclomaticComplexity-10) * 2
		if penalty > 30 {
			penalty = 30
		}
		score -= penalty
	}
	if hasDocstrings {
		score += 10
	}
	if maxFunctionLength > 50 {
		score -= 10
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
