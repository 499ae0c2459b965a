// Package logcontext extracts the window of lines around a primary match.
package logcontext

import "github.com/podmortem/log-parser/internal/patterns"

// EventContext is the window of log lines before and after a primary match.
type EventContext struct {
	LinesBefore []string `json:"lines_before"`
	MatchedLine string   `json:"matched_line"`
	LinesAfter  []string `json:"lines_after"`
}

// Extract builds the EventContext for a match at matchIndex (zero-based)
// within lines, per rules. A nil rules produces the matched line alone.
func Extract(lines []string, matchIndex int, rules *patterns.ContextExtraction) EventContext {
	matched := lines[matchIndex]

	if rules == nil {
		return EventContext{MatchedLine: matched}
	}

	beforeStart := matchIndex - rules.LinesBefore
	if beforeStart < 0 {
		beforeStart = 0
	}
	before := append([]string{}, lines[beforeStart:matchIndex]...)

	afterEnd := matchIndex + 1 + rules.LinesAfter
	if afterEnd > len(lines) {
		afterEnd = len(lines)
	}
	after := append([]string{}, lines[matchIndex+1:afterEnd]...)

	return EventContext{
		LinesBefore: before,
		MatchedLine: matched,
		LinesAfter:  after,
	}
}

// AllLines returns LinesBefore + MatchedLine + LinesAfter, the input the
// Context Scorer operates on.
func (c EventContext) AllLines() []string {
	all := make([]string, 0, len(c.LinesBefore)+1+len(c.LinesAfter))
	all = append(all, c.LinesBefore...)
	all = append(all, c.MatchedLine)
	all = append(all, c.LinesAfter...)
	return all
}
