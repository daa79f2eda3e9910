package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitMessage(t *testing.T) {
	msg := CommitMessage(Changes{
		Language: "Python",
		Problem:  "Implement binary search",
		Features: []string{"Added binary search", "Added tests"},
	})
	assert.Contains(t, msg, "feat: AI-generated code updates")
	assert.Contains(t, msg, "Language: Python")
	assert.Contains(t, msg, "binary search")
	assert.Contains(t, msg, "- Added binary search")
}

func TestCommitMessageTruncatesProblem(t *testing.T) {
	msg := CommitMessage(Changes{Problem: strings.Repeat("x", 200)})
	assert.Contains(t, msg, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, msg, strings.Repeat("x", 101))
}

func TestParseTestResultsPytest(t *testing.T) {
	output := "==== 12 passed, 2 failed in 0.41s ===="
	report := ParseTestResults(output, "Python")
	assert.Equal(t, 12, report.Passed)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 14, report.Total)
}

func TestParseTestResultsUnknownLanguage(t *testing.T) {
	report := ParseTestResults("ok  \tpkg\t0.01s", "Go")
	assert.Zero(t, report.Total)
	assert.Zero(t, report.Passed)
}

func TestCICDConfig(t *testing.T) {
	yml := CICDConfig("Python", "pytest -v")
	assert.Contains(t, yml, "name: Python CI")
	assert.Contains(t, yml, "run: pytest -v")
	assert.Empty(t, CICDConfig("Go", "go test ./..."))
}
