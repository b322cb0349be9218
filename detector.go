package tutor

import (
	"regexp"
	"strings"
)

// IntentDetector extracts a function expression from a message that asks
// for a plot.
type IntentDetector interface {
	Detect(message string) (expression string, ok bool)
}

// Interface compliance check.
var _ IntentDetector = (*KeywordDetector)(nil)

// DefaultPlotKeywords are the French phrases that signal a plot request.
var DefaultPlotKeywords = []string{
	"trace",
	"tracer",
	"dessine",
	"dessiner",
	"graphique de",
	"courbe de",
	"représente",
}

// plotExpression captures an optional "f(x) =" prefix followed by a run of
// expression characters. The match is unanchored and greedy, so trailing
// spaces and digits from surrounding prose end up in the capture.
var plotExpression = regexp.MustCompile(`(?:f\(x\)\s*=\s*)?([x\d\s+\-*/^()]{2,})`)

// KeywordDetector matches a keyword list, then extracts the expression with
// a single regular expression.
type KeywordDetector struct {
	keywords []string
}

// NewKeywordDetector returns a detector for the given keywords. With no
// keywords it uses DefaultPlotKeywords.
func NewKeywordDetector(keywords ...string) *KeywordDetector {
	if len(keywords) == 0 {
		keywords = DefaultPlotKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordDetector{keywords: lowered}
}

// Detect returns the trimmed expression when the message contains a plot
// keyword and the expression regex captures something.
func (d *KeywordDetector) Detect(message string) (string, bool) {
	if !d.hasKeyword(strings.ToLower(message)) {
		return "", false
	}
	m := plotExpression.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	expr := strings.TrimSpace(m[1])
	if expr == "" {
		return "", false
	}
	return expr, true
}

func (d *KeywordDetector) hasKeyword(lowered string) bool {
	for _, k := range d.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
