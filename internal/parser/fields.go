package parser

import (
	"fmt"
	"strings"
)

// Field alias tables used by the JSON parser to probe for canonical
// fields under their many conventional spellings.
var (
	timestampAliases = []string{"timestamp", "time", "@timestamp", "ts", "datetime", "created", "date", "logged_at", "log_time"}
	levelAliases     = []string{"level", "severity", "loglevel", "log_level", "lvl", "levelname", "priority"}
	messageAliases   = []string{"message", "msg", "text", "log", "body", "content", "event", "description"}
	correlationAliases = map[string]string{
		"request_id":     "request_id",
		"requestid":      "request_id",
		"correlation_id": "correlation_id",
		"trace_id":       "trace_id",
		"traceid":        "trace_id",
		"span_id":        "span_id",
		"spanid":         "span_id",
		"session_id":     "session_id",
		"sessionid":      "session_id",
		"user_id":        "user_id",
		"userid":         "user_id",
	}
	sourceAliases = map[string]string{
		"host":     "host",
		"hostname": "host",
		"service":  "service",
		"app":      "service",
	}
)

// firstString probes m for each key in aliases, in order, returning the
// first string value found and the key it came under.
func firstString(m map[string]any, aliases []string) (value string, key string, ok bool) {
	for _, k := range aliases {
		if v, present := m[k]; present {
			if s, isStr := v.(string); isStr && s != "" {
				return s, k, true
			}
		}
	}
	return "", "", false
}

// synthesizeMessage builds a fallback message when no message-like field
// was found: event/action/type/status fields present in m, each rendered
// as "key=value" and joined with ", "; failing those, the first three
// keys of the document in their original JSON order, same rendering.
// keyOrder must list m's keys in the order they appeared in the source
// document (map[string]any iteration order is unspecified, so it cannot
// be derived from m itself).
func synthesizeMessage(m map[string]any, keyOrder []string) string {
	var parts []string
	for _, k := range []string{"event", "action", "type", "status"} {
		if v, ok := m[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	var fallback []string
	for _, k := range keyOrder {
		fallback = append(fallback, fmt.Sprintf("%s=%v", k, m[k]))
		if len(fallback) == 3 {
			break
		}
	}
	return strings.Join(fallback, ", ")
}
