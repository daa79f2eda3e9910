// Package codetext provides the text utilities shared by every agent in the
// pipeline: pulling source code out of markdown-formatted model responses and
// computing lightweight, heuristic code metrics. All functions are pure and
// never return errors; absence of a match yields empty or zero values.
package codetext

import (
	"regexp"
	"strings"
	"sync"
)

// genericFence matches any fenced code block with an optional language tag.
var genericFence = regexp.MustCompile("(?s)```(?:\\w+)?\\s*\\n(.*?)```")

var (
	fenceMu    sync.RWMutex
	fenceCache = map[string]*regexp.Regexp{}
)

// taggedFence returns the pattern for a fence carrying the given language
// tag. The tag is quoted so names like "C++" or "C#" stay literal.
func taggedFence(language string) *regexp.Regexp {
	key := strings.ToLower(language)
	fenceMu.RLock()
	re, ok := fenceCache[key]
	fenceMu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile("(?is)```" + regexp.QuoteMeta(key) + "\\s*\\n(.*?)```")
	fenceMu.Lock()
	fenceCache[key] = re
	fenceMu.Unlock()
	return re
}

// Extract returns the best-guess source code payload from free-form text.
// A fence tagged with the requested language wins, then any fence, then the
// trimmed input unchanged. Only the first matching fence is used. Pass an
// empty language to skip the tagged search.
func Extract(text, language string) string {
	if text == "" {
		return ""
	}
	if language != "" {
		if m := taggedFence(language).FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if m := genericFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// leadingPhrases are explanatory prefixes models commonly emit before code.
var leadingPhrases = []string{
	"Here's the code:",
	"Here is the code:",
	"The code is:",
	"Here's the implementation:",
	"Here is the implementation:",
}

// CleanResponse strips markdown fences and common explanatory lead-ins from a
// raw model response.
func CleanResponse(response string) string {
	response = Extract(response, "")
	for _, phrase := range leadingPhrases {
		if strings.HasPrefix(strings.ToLower(response), strings.ToLower(phrase)) {
			response = strings.TrimSpace(response[len(phrase):])
		}
	}
	return response
}
