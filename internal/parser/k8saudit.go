package parser

import (
	"encoding/json"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

// K8sAudit parses the Kubernetes API server audit log JSON event format.
type K8sAudit struct{}

func NewK8sAudit() *K8sAudit { return &K8sAudit{} }

func (p *K8sAudit) Name() string { return "k8s_audit" }

func (p *K8sAudit) SupportedFormats() []string { return []string{"k8s_audit", "kubernetes_audit"} }

func (p *K8sAudit) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	m, ok := decodeAuditLike(line)
	if !ok || !isK8sAuditEvent(m) {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line is not a Kubernetes audit event")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}
	r.FormatDetected = "k8s_audit"

	verb, _ := m["verb"].(string)
	uri, _ := m["requestURI"].(string)
	r.Message = strings.TrimSpace(strings.ToUpper(verb) + " " + uri)

	if auditID, ok := m["auditID"].(string); ok {
		r.Correlation.RequestID = auditID
	}
	if ts, ok := m["requestReceivedTimestamp"].(string); ok {
		if t, precision, ok := ParseTimestamp(ts); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
		}
	} else if ts, ok := m["stageTimestamp"].(string); ok {
		if t, precision, ok := ParseTimestamp(ts); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
		}
	}

	if rs, ok := m["responseStatus"].(map[string]any); ok {
		if code, ok := rs["code"].(float64); ok {
			status := int(code)
			r.HTTP = &record.HTTP{Method: verb, Path: uri, Status: status}
			r.Level = record.LevelFromHTTPStatus(status)
		}
	}
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(r.Message)
	}

	if user, ok := m["user"].(map[string]any); ok {
		if username, ok := user["username"].(string); ok {
			r.Correlation.UserID = username
		}
		if groups, ok := user["groups"].([]any); ok {
			r.Extra["user_groups"] = groups
		}
	}
	if addrs, ok := m["sourceIPs"].([]any); ok && len(addrs) > 0 {
		if ip, ok := addrs[0].(string); ok {
			r.Network = &record.Network{SrcIP: ip}
		}
	}
	if stage, ok := m["stage"].(string); ok {
		r.Extra["stage"] = stage
	}

	r.ParserConfidence = 1.0
	return r
}

func decodeAuditLike(line string) (map[string]any, bool) {
	var raw any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	return m, ok
}

func isK8sAuditEvent(m map[string]any) bool {
	apiVersion, ok := m["apiVersion"].(string)
	return ok && strings.Contains(apiVersion, "audit.k8s.io")
}

func (p *K8sAudit) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		m, ok := decodeAuditLike(line)
		return ok && isK8sAuditEvent(m)
	})
}
