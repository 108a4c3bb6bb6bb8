package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/loglens/loglens/internal/record"
	"github.com/loglens/loglens/internal/safety"
)

// JSON parses one JSON object per line, the single most common
// structured-logging wire format. Canonical fields are probed through a
// small ordered alias table each, so several vendors' spellings of the
// same concept all land in the same place.
type JSON struct{}

func NewJSON() *JSON { return &JSON{} }

func (p *JSON) Name() string { return "json" }

func (p *JSON) SupportedFormats() []string { return []string{"json", "json_structured", "structured"} }

func (p *JSON) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()
	r.FormatDetected = "json_structured"

	var raw any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return failJSON(r, line, fmt.Sprintf("invalid JSON: %v", err))
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return failJSON(r, line, "JSON value is not an object")
	}
	if err := safety.CheckJSONDepth(m, safety.DefaultMaxJSONDepth); err != nil {
		return failJSON(r, line, err.Error())
	}

	used := map[string]bool{}

	if tsStr, key, found := firstString(m, timestampAliases); found {
		used[key] = true
		if t, precision, ok := ParseTimestamp(tsStr); ok {
			r.Timestamp = &t
			r.TimestampPrecision = precision
		}
	}

	if lvlStr, key, found := firstString(m, levelAliases); found {
		used[key] = true
		r.Level = record.ParseLevel(lvlStr)
	}

	if msg, key, found := firstString(m, messageAliases); found {
		used[key] = true
		r.Message = msg
	} else {
		r.Message = synthesizeMessage(m, jsonKeyOrder(line))
	}
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(r.Message)
	}

	for k, canonical := range correlationAliases {
		if v, present := m[k]; present {
			if s, isStr := v.(string); isStr && s != "" {
				used[k] = true
				assignCorrelation(&r.Correlation, canonical, s)
			}
		}
	}
	for k, canonical := range sourceAliases {
		if v, present := m[k]; present {
			if s, isStr := v.(string); isStr && s != "" {
				used[k] = true
				assignSource(&r.Source, canonical, s)
			}
		}
	}

	for k, v := range m {
		if !used[k] {
			r.Extra[k] = v
		}
	}
	r.ParserConfidence = 1.0
	return r
}

func failJSON(r record.Record, line, reason string) record.Record {
	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, reason)
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func assignCorrelation(c *record.Correlation, canonical, value string) {
	switch canonical {
	case "request_id":
		c.RequestID = value
	case "correlation_id":
		c.CorrelationID = value
	case "trace_id":
		c.TraceID = value
	case "span_id":
		c.SpanID = value
	case "session_id":
		c.SessionID = value
	case "user_id":
		c.UserID = value
	}
}

func assignSource(s *record.Source, canonical, value string) {
	switch canonical {
	case "host":
		s.Hostname = value
	case "service":
		s.Service = value
	}
}

// jsonKeyOrder walks line's top-level object with a token decoder to
// recover its key order; map[string]any (what json.Unmarshal produced
// above) has no ordering of its own, and synthesizeMessage's fallback
// must be deterministic across runs over the same line.
func jsonKeyOrder(line string) []string {
	dec := json.NewDecoder(strings.NewReader(line))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := keyTok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

func (p *JSON) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "{") {
			return false
		}
		var raw any
		if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
			return false
		}
		_, ok := raw.(map[string]any)
		return ok
	})
}
