package record

import "time"

// ToMapping renders the record into the documented wire shape: nil
// sub-records are elided, non-empty Correlation/HTTP/Network are included
// only when they carry data.
func (r Record) ToMapping() map[string]any {
	m := map[string]any{
		"id":                  r.ID.String(),
		"raw":                 r.Raw,
		"timestamp_precision": string(r.TimestampPrecision),
		"level":               r.Level.String(),
		"format_detected":     r.FormatDetected,
		"message":             r.Message,
		"structured_data":     r.StructuredData,
		"parser_name":         r.ParserName,
		"parser_confidence":   r.ParserConfidence,
		"parse_errors":        r.ParseErrors,
		"extra":               r.Extra,
	}
	if r.Timestamp != nil {
		m["timestamp"] = r.Timestamp.UTC().Format(time.RFC3339Nano)
	} else {
		m["timestamp"] = nil
	}
	if !r.Source.isEmpty() {
		m["source"] = sourceToMapping(r.Source)
	}
	if r.Network != nil && !r.Network.isEmpty() {
		m["network"] = networkToMapping(*r.Network)
	}
	if r.HTTP != nil && !r.HTTP.isEmpty() {
		m["http"] = httpToMapping(*r.HTTP)
	}
	if !r.Correlation.isEmpty() {
		m["correlation"] = correlationToMapping(r.Correlation)
	}
	return m
}

func sourceToMapping(s Source) map[string]any {
	m := map[string]any{}
	if s.FilePath != "" {
		m["file_path"] = s.FilePath
	}
	if s.LineNumber != 0 {
		m["line_number"] = s.LineNumber
	}
	if s.Hostname != "" {
		m["hostname"] = s.Hostname
	}
	if s.Service != "" {
		m["service"] = s.Service
	}
	if s.ContainerID != "" {
		m["container_id"] = s.ContainerID
	}
	if s.PodName != "" {
		m["pod_name"] = s.PodName
	}
	if s.Namespace != "" {
		m["namespace"] = s.Namespace
	}
	return m
}

func networkToMapping(n Network) map[string]any {
	m := map[string]any{}
	if n.SrcIP != "" {
		m["src_ip"] = n.SrcIP
	}
	if n.SrcPort != 0 {
		m["src_port"] = n.SrcPort
	}
	if n.DstIP != "" {
		m["dst_ip"] = n.DstIP
	}
	if n.DstPort != 0 {
		m["dst_port"] = n.DstPort
	}
	if n.Protocol != "" {
		m["protocol"] = n.Protocol
	}
	if n.UserAgent != "" {
		m["user_agent"] = n.UserAgent
	}
	if n.Referer != "" {
		m["referer"] = n.Referer
	}
	return m
}

func httpToMapping(h HTTP) map[string]any {
	m := map[string]any{}
	if h.Method != "" {
		m["method"] = h.Method
	}
	if h.Path != "" {
		m["path"] = h.Path
	}
	if h.Query != "" {
		m["query"] = h.Query
	}
	if h.Status != 0 {
		m["status"] = h.Status
	}
	if h.ResponseSize != 0 {
		m["response_size"] = h.ResponseSize
	}
	if h.ResponseTimeMs != 0 {
		m["response_time_ms"] = h.ResponseTimeMs
	}
	if h.HTTPVersion != "" {
		m["http_version"] = h.HTTPVersion
	}
	return m
}

func correlationToMapping(c Correlation) map[string]any {
	m := map[string]any{}
	if c.RequestID != "" {
		m["request_id"] = c.RequestID
	}
	if c.TraceID != "" {
		m["trace_id"] = c.TraceID
	}
	if c.SpanID != "" {
		m["span_id"] = c.SpanID
	}
	if c.CorrelationID != "" {
		m["correlation_id"] = c.CorrelationID
	}
	if c.SessionID != "" {
		m["session_id"] = c.SessionID
	}
	if c.UserID != "" {
		m["user_id"] = c.UserID
	}
	if c.TransactionID != "" {
		m["transaction_id"] = c.TransactionID
	}
	return m
}

// FromMapping is the discriminated constructor counterpart to ToMapping; it
// is round-trip-stable for every documented field.
func FromMapping(m map[string]any) Record {
	r := Record{
		StructuredData: map[string]any{},
		Extra:          map[string]any{},
	}
	if idStr, ok := m["id"].(string); ok {
		if id, err := parseUUID(idStr); err == nil {
			r.ID = id
		}
	}
	r.Raw, _ = m["raw"].(string)
	if ts, ok := m["timestamp"].(string); ok && ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Timestamp = &t
		}
	}
	r.TimestampPrecision = PrecisionUnknown
	if p, ok := m["timestamp_precision"].(string); ok && p != "" {
		r.TimestampPrecision = Precision(p)
	}
	if lvl, ok := m["level"].(string); ok {
		r.Level = ParseLevel(lvl)
	}
	r.FormatDetected, _ = m["format_detected"].(string)
	r.Message, _ = m["message"].(string)
	if sd, ok := m["structured_data"].(map[string]any); ok {
		r.StructuredData = sd
	}
	if src, ok := m["source"].(map[string]any); ok {
		r.Source = sourceFromMapping(src)
	}
	if net, ok := m["network"].(map[string]any); ok {
		n := networkFromMapping(net)
		r.Network = &n
	}
	if h, ok := m["http"].(map[string]any); ok {
		hv := httpFromMapping(h)
		r.HTTP = &hv
	}
	if c, ok := m["correlation"].(map[string]any); ok {
		r.Correlation = correlationFromMapping(c)
	}
	r.ParserName, _ = m["parser_name"].(string)
	if conf, ok := m["parser_confidence"].(float64); ok {
		r.ParserConfidence = conf
	}
	r.ParseErrors = toStringSlice(m["parse_errors"])
	if ex, ok := m["extra"].(map[string]any); ok {
		r.Extra = ex
	}
	return r
}

func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func sourceFromMapping(m map[string]any) Source {
	var s Source
	s.FilePath, _ = m["file_path"].(string)
	if ln, ok := m["line_number"].(int); ok {
		s.LineNumber = ln
	} else if ln, ok := m["line_number"].(float64); ok {
		s.LineNumber = int(ln)
	}
	s.Hostname, _ = m["hostname"].(string)
	s.Service, _ = m["service"].(string)
	s.ContainerID, _ = m["container_id"].(string)
	s.PodName, _ = m["pod_name"].(string)
	s.Namespace, _ = m["namespace"].(string)
	return s
}

func networkFromMapping(m map[string]any) Network {
	var n Network
	n.SrcIP, _ = m["src_ip"].(string)
	n.SrcPort = intField(m["src_port"])
	n.DstIP, _ = m["dst_ip"].(string)
	n.DstPort = intField(m["dst_port"])
	n.Protocol, _ = m["protocol"].(string)
	n.UserAgent, _ = m["user_agent"].(string)
	n.Referer, _ = m["referer"].(string)
	return n
}

func httpFromMapping(m map[string]any) HTTP {
	var h HTTP
	h.Method, _ = m["method"].(string)
	h.Path, _ = m["path"].(string)
	h.Query, _ = m["query"].(string)
	h.Status = intField(m["status"])
	if sz, ok := m["response_size"].(int64); ok {
		h.ResponseSize = sz
	} else if sz, ok := m["response_size"].(float64); ok {
		h.ResponseSize = int64(sz)
	}
	if rt, ok := m["response_time_ms"].(float64); ok {
		h.ResponseTimeMs = rt
	}
	h.HTTPVersion, _ = m["http_version"].(string)
	return h
}

func correlationFromMapping(m map[string]any) Correlation {
	var c Correlation
	c.RequestID, _ = m["request_id"].(string)
	c.TraceID, _ = m["trace_id"].(string)
	c.SpanID, _ = m["span_id"].(string)
	c.CorrelationID, _ = m["correlation_id"].(string)
	c.SessionID, _ = m["session_id"].(string)
	c.UserID, _ = m["user_id"].(string)
	c.TransactionID, _ = m["transaction_id"].(string)
	return c
}

func intField(v any) int {
	switch vv := v.(type) {
	case int:
		return vv
	case float64:
		return int(vv)
	default:
		return 0
	}
}
