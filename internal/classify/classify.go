// Package classify suggests priority, effort, tags and a deadline for a task
// from keyword and length heuristics over its title and description.
package classify

import (
	"strings"
	"time"
)

// Priority levels, matching task.Priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Time estimate buckets.
const (
	EstimateHours    = "1-2 hours"
	EstimateHalfDay  = "3-5 hours"
	EstimateDays     = "1-2 days"
	EstimateMultiDay = "3-5 days"
)

const (
	maxSuggestedTags = 3
	defaultReasoning = "Based on the task content, I've analyzed the urgency, complexity, and common patterns."
	isoDateLayout    = "2006-01-02"
)

var (
	highKeywords = []string{"urgent", "critical", "asap", "emergency", "important", "deadline"}
	lowKeywords  = []string{"optional", "nice to have", "whenever", "eventually"}
)

type tagRule struct {
	tag      string
	keywords []string
}

// Declaration order is the output order.
var tagRules = []tagRule{
	{"development", []string{"code", "develop", "programming", "api", "frontend", "backend"}},
	{"design", []string{"design", "ui", "ux", "mockup", "prototype"}},
	{"documentation", []string{"document", "write", "readme", "guide"}},
	{"bug", []string{"bug", "fix", "error", "issue"}},
	{"feature", []string{"feature", "implement", "add", "create"}},
	{"meeting", []string{"meeting", "call", "discuss", "sync"}},
	{"review", []string{"review", "check", "validate", "test"}},
}

// Suggestions is the full analysis of one task.
type Suggestions struct {
	SuggestedPriority string   `json:"suggestedPriority"`
	EstimatedTime     string   `json:"estimatedTime"`
	Tags              []string `json:"tags"`
	Deadline          string   `json:"deadline"`
	Reasoning         string   `json:"reasoning"`
}

// Analyze runs every heuristic. now anchors the deadline.
func Analyze(title, description string, now time.Time) Suggestions {
	text := combine(title, description)
	return Suggestions{
		SuggestedPriority: priorityOf(text),
		EstimatedTime:     estimateOf(text),
		Tags:              tagsOf(text),
		Deadline:          deadlineOf(text, now),
		Reasoning:         defaultReasoning,
	}
}

// Priority returns high, medium or low. High keywords win over low ones.
func Priority(title, description string) string {
	return priorityOf(combine(title, description))
}

// EstimateTime buckets the combined word count.
func EstimateTime(title, description string) string {
	return estimateOf(combine(title, description))
}

// Tags returns up to three matching categories.
func Tags(title, description string) []string {
	return tagsOf(combine(title, description))
}

// Deadline returns an ISO calendar date relative to now.
func Deadline(title, description string, now time.Time) string {
	return deadlineOf(combine(title, description), now)
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func combine(title, description string) string {
	return strings.ToLower(title + " " + description)
}

func priorityOf(text string) string {
	if containsAny(text, highKeywords) {
		return PriorityHigh
	}
	if containsAny(text, lowKeywords) {
		return PriorityLow
	}
	return PriorityMedium
}

func estimateOf(text string) string {
	n := WordCount(text)
	switch {
	case n < 20:
		return EstimateHours
	case n < 50:
		return EstimateHalfDay
	case n < 100:
		return EstimateDays
	default:
		return EstimateMultiDay
	}
}

func tagsOf(text string) []string {
	tags := make([]string, 0, maxSuggestedTags)
	for _, rule := range tagRules {
		if len(tags) == maxSuggestedTags {
			break
		}
		if containsAny(text, rule.keywords) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

func deadlineOf(text string, now time.Time) string {
	days := 7
	switch {
	case strings.Contains(text, "urgent") || strings.Contains(text, "asap"):
		days = 1
	case strings.Contains(text, "quick") || strings.Contains(text, "simple"):
		days = 3
	}
	return now.UTC().AddDate(0, 0, days).Format(isoDateLayout)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
