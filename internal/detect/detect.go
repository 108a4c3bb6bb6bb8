// Package detect implements format detection over a small sample of
// lines: each registered Signature contributes a weighted score built
// from an is_json fraction, a primary "magic pattern" fraction, and a
// secondary pattern fraction, and the highest-scoring signature wins.
// Each format self-describes as a declarative Signature value rather
// than a predicate function, so scoring stays data-driven and testable
// in isolation from any one parser's code.
package detect

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// SampleSize is the default number of non-empty lines a caller should
// sample before calling Detect.
const SampleSize = 50

// Signature declaratively describes one detectable format.
type Signature struct {
	Name              string
	Weight            float64
	IsJSON            bool
	MagicPatterns     []*regexp.Regexp
	SecondaryPatterns []*regexp.Regexp
}

// Result is one scored signature, as returned by DetectAll.
type Result struct {
	Name       string
	Score      float64
	Confidence float64
}

// Detector holds a fixed, pre-compiled set of signatures to score samples
// against.
type Detector struct {
	signatures []Signature
}

// NewDetector builds a Detector from sigs, preserving insertion order for
// tie-breaking.
func NewDetector(sigs []Signature) *Detector {
	return &Detector{signatures: sigs}
}

// Detect returns the single best-matching format name and its confidence.
// Matches the ("generic", 0.3) / ("unknown", 0) fallback contract for no
// match and empty input respectively.
func (d *Detector) Detect(lines []string) (string, float64) {
	results := d.DetectAll(lines)
	if len(results) == 0 {
		if len(nonEmpty(lines)) == 0 {
			return "unknown", 0
		}
		return "generic", 0.3
	}
	best := results[0]
	if best.Score <= 0 {
		return "generic", 0.3
	}
	return best.Name, best.Confidence
}

// DetectAll scores every signature against lines and returns them ranked
// highest-score-first, ties broken by insertion order. Signatures scoring
// exactly zero are omitted, matching the "no signature scores above zero"
// fallback condition in Detect.
func (d *Detector) DetectAll(lines []string) []Result {
	sample := nonEmpty(lines)
	if len(sample) == 0 {
		return nil
	}

	type scored struct {
		idx    int
		result Result
	}
	var all []scored
	maxScore := 0.0
	for i, sig := range d.signatures {
		score := scoreSignature(sig, sample)
		if score > maxScore {
			maxScore = score
		}
		all = append(all, scored{idx: i, result: Result{Name: sig.Name, Score: score}})
	}

	var out []Result
	for _, s := range all {
		if s.result.Score <= 0 {
			continue
		}
		confidence := 1.0
		if maxScore > 0 {
			confidence = s.result.Score / maxScore
			if confidence > 1 {
				confidence = 1
			}
		}
		s.result.Confidence = confidence
		out = append(out, s.result)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func scoreSignature(sig Signature, sample []string) float64 {
	score := 0.0
	if sig.IsJSON {
		frac := fraction(sample, isJSONMapping)
		if frac <= 0.5 {
			return 0
		}
		score += frac * sig.Weight * 2
	}
	if len(sig.MagicPatterns) > 0 {
		first := sig.MagicPatterns[0]
		frac := fraction(sample, first.MatchString)
		score += frac * sig.Weight * 3
	}
	if len(sig.SecondaryPatterns) > 0 {
		frac := fraction(sample, func(line string) bool {
			return matchesAny(sig.SecondaryPatterns, line)
		})
		score += frac * sig.Weight * 1
	}
	return score
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func isJSONMapping(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return false
	}
	_, ok := v.(map[string]any)
	return ok
}

func fraction(lines []string, match func(string) bool) float64 {
	if len(lines) == 0 {
		return 0
	}
	hits := 0
	for _, l := range lines {
		if match(l) {
			hits++
		}
	}
	return float64(hits) / float64(len(lines))
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
