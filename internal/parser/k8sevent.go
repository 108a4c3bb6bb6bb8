package parser

import (
	"regexp"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

var k8sEventTableHeaderRE = regexp.MustCompile(`(?i)^\s*AGE\s+TYPE\s+REASON\s+OBJECT\s+MESSAGE\s*$`)

// k8sEventTableRowRE splits the tabular `kubectl get events` output:
// AGE TYPE REASON OBJECT MESSAGE, where MESSAGE may itself contain spaces.
var k8sEventTableRowRE = regexp.MustCompile(`^(\S+)\s+(Normal|Warning)\s+(\S+)\s+(\S+)\s+(.*)$`)

// K8sEvent parses Kubernetes Event objects, either as JSON (from `kubectl
// get events -o json` or the events API) or as the tabular CLI output.
type K8sEvent struct{}

func NewK8sEvent() *K8sEvent { return &K8sEvent{} }

func (p *K8sEvent) Name() string { return "k8s_event" }

func (p *K8sEvent) SupportedFormats() []string { return []string{"k8s_event", "kubernetes_event"} }

func (p *K8sEvent) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		if m, ok := decodeAuditLike(trimmed); ok {
			if rec, handled := p.parseJSONEvent(r, m); handled {
				return rec
			}
		}
	}

	if k8sEventTableHeaderRE.MatchString(line) {
		r.FormatDetected = "k8s_event_table_header"
		r.Level = record.Unknown
		r.Message = trimmed
		r.ParserConfidence = 0.4
		return r
	}
	if m := k8sEventTableRowRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "k8s_event_table"
		r.Level = k8sEventLevel(m[2])
		r.Extra["reason"] = m[3]
		r.Extra["involved_object"] = m[4]
		r.Message = m[5]
		r.ParserConfidence = 1.0
		return r
	}

	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, "line is not a Kubernetes event")
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func (p *K8sEvent) parseJSONEvent(r record.Record, m map[string]any) (record.Record, bool) {
	reason, hasReason := m["reason"].(string)
	msg, hasMessage := m["message"].(string)
	involved, hasInvolved := m["involvedObject"].(map[string]any)
	if !hasReason || !hasMessage || !hasInvolved {
		return r, false
	}
	r.FormatDetected = "k8s_event_json"
	r.Message = msg
	r.Extra["reason"] = reason
	if kind, ok := involved["kind"].(string); ok {
		if name, ok := involved["name"].(string); ok {
			r.Extra["involved_object"] = kind + "/" + name
		}
	}
	if typ, ok := m["type"].(string); ok {
		r.Level = k8sEventLevel(typ)
	} else {
		r.Level = InferLevelFromMessage(msg)
	}
	if ts, ok := m["lastTimestamp"].(string); ok {
		if t, precision, ok := ParseTimestamp(ts); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
		}
	}
	r.ParserConfidence = 1.0
	return r, true
}

func k8sEventLevel(typ string) record.Level {
	if strings.EqualFold(typ, "Warning") {
		return record.Warning
	}
	return record.Info
}

func (p *K8sEvent) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			if m, ok := decodeAuditLike(trimmed); ok {
				_, hasReason := m["reason"]
				_, hasMessage := m["message"]
				_, hasInvolved := m["involvedObject"]
				if hasReason && hasMessage && hasInvolved {
					return true
				}
			}
		}
		return k8sEventTableHeaderRE.MatchString(line) || k8sEventTableRowRE.MatchString(line)
	})
}
