package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

// k8sContainerCRIRE matches the full CRI log line shape: timestamp,
// stream (stdout/stderr), a full-or-partial tag (F/P), then the message.
var k8sContainerCRIRE = regexp.MustCompile(`^(\S+Z) (stdout|stderr) (F|P) (.*)$`)

// k8sContainerBareTimestampRE matches a leading timestamp with no stream
// tag, the looser shape some non-CRI kubelet configurations emit.
var k8sContainerBareTimestampRE = regexp.MustCompile(`^(\S+Z) (.*)$`)

// K8sContainer parses the kubelet/CRI container log wire format: an
// optional leading RFC3339 nanosecond timestamp (and occasionally a
// stream tag), followed by the application's own line, which is handed
// to the JSON parser when it looks like JSON.
type K8sContainer struct {
	json *JSON
}

func NewK8sContainer() *K8sContainer { return &K8sContainer{json: NewJSON()} }

func (p *K8sContainer) Name() string { return "k8s_container" }

func (p *K8sContainer) SupportedFormats() []string {
	return []string{"k8s_container", "kubernetes_container"}
}

func (p *K8sContainer) ParseLine(line string) record.Record {
	rest := line
	r := record.New(line)
	r.ParserName = p.Name()
	r.FormatDetected = "k8s_container"

	if m := k8sContainerCRIRE.FindStringSubmatch(line); m != nil {
		if t, precision, ok := ParseTimestamp(m[1]); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
			r.Extra["stream"] = m[2]
			if m[3] == "P" {
				r.Extra["partial"] = true
			}
			rest = m[4]
		}
	} else if m := k8sContainerBareTimestampRE.FindStringSubmatch(line); m != nil {
		if t, precision, ok := ParseTimestamp(m[1]); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
			rest = m[2]
		}
	}

	trimmed := strings.TrimSpace(rest)
	if strings.HasPrefix(trimmed, "{") {
		var probe any
		if err := json.Unmarshal([]byte(trimmed), &probe); err == nil {
			if _, ok := probe.(map[string]any); ok {
				inner := p.json.ParseLine(trimmed)
				inner.Raw = line
				inner.ParserName = p.Name()
				inner.FormatDetected = "k8s_container_json"
				if inner.Timestamp == nil {
					inner.Timestamp = r.Timestamp
					inner.TimestampPrecision = r.TimestampPrecision
				}
				for k, v := range r.Extra {
					inner.Extra[k] = v
				}
				return inner
			}
		}
	}

	r.Message = trimmed
	r.Level = InferLevelFromMessage(trimmed)
	r.ParserConfidence = 0.8
	return r
}

func (p *K8sContainer) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		return k8sContainerCRIRE.MatchString(line) || k8sContainerBareTimestampRE.MatchString(line)
	})
}
