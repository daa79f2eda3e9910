package codetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTaggedFence(t *testing.T) {
	text := "```python\nprint('hi')\n```"
	assert.Equal(t, "print('hi')", Extract(text, "python"))
	assert.Equal(t, "print('hi')", Extract(text, "Python"), "tag match is case-insensitive")
}

func TestExtractGenericFence(t *testing.T) {
	text := "Here is code:\n```\nx = 1\n```"
	assert.Equal(t, "x = 1", Extract(text, ""))
}

func TestExtractPrefersTaggedOverEarlierUntagged(t *testing.T) {
	text := "```\nnot this\n```\nand then\n```go\npackage main\n```"
	assert.Equal(t, "package main", Extract(text, "go"))
}

func TestExtractFallsBackToGenericWhenTagMissing(t *testing.T) {
	text := "```js\nlet x = 1\n```"
	assert.Equal(t, "let x = 1", Extract(text, "python"))
}

func TestExtractFirstFenceOnly(t *testing.T) {
	text := "```\nfirst\n```\n```\nsecond\n```"
	assert.Equal(t, "first", Extract(text, ""))
}

func TestExtractNoFence(t *testing.T) {
	assert.Equal(t, "Just plain text", Extract("  Just plain text \n", "python"))
}

func TestExtractUnclosedFence(t *testing.T) {
	text := "```python\nx = 1"
	assert.Equal(t, text, Extract(text, "python"))
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Equal(t, "", Extract("", "python"))
}

func TestExtractQuotesLanguageMetacharacters(t *testing.T) {
	text := "```c++\nint main() {}\n```"
	assert.NotPanics(t, func() {
		assert.Equal(t, "int main() {}", Extract(text, "C++"))
	})
}

func TestCleanResponse(t *testing.T) {
	raw := "Here's the code:\n```python\nprint('hello')\n```"
	cleaned := CleanResponse(raw)
	assert.NotContains(t, cleaned, "Here's the code:")
	assert.Contains(t, cleaned, "print('hello')")

	assert.Equal(t, "x = 1", CleanResponse("The code is: x = 1"))
	assert.Equal(t, "plain", CleanResponse("plain"))
}
