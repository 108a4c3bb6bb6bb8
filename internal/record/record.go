// Package record defines the normalized LogRecord produced by every parser
// in this module, along with its round-trippable mapping form.
package record

import (
	"time"

	"github.com/google/uuid"
)

// Precision describes how fine-grained a parsed timestamp was.
type Precision string

const (
	PrecisionUnknown Precision = "unknown"
	PrecisionSecond  Precision = "s"
	PrecisionMilli   Precision = "ms"
	PrecisionMicro   Precision = "us"
	PrecisionNano    Precision = "ns"
)

// Source carries where a record came from.
type Source struct {
	FilePath    string `json:"file_path,omitempty"`
	LineNumber  int    `json:"line_number,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	Service     string `json:"service,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
	PodName     string `json:"pod_name,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
}

func (s Source) isEmpty() bool {
	return s == Source{}
}

// Network carries connection-level metadata for records that describe one.
type Network struct {
	SrcIP     string `json:"src_ip,omitempty"`
	SrcPort   int    `json:"src_port,omitempty"`
	DstIP     string `json:"dst_ip,omitempty"`
	DstPort   int    `json:"dst_port,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Referer   string `json:"referer,omitempty"`
}

func (n Network) isEmpty() bool { return n == Network{} }

// HTTP carries request/response metadata for access-log style records.
type HTTP struct {
	Method         string  `json:"method,omitempty"`
	Path           string  `json:"path,omitempty"`
	Query          string  `json:"query,omitempty"`
	Status         int     `json:"status,omitempty"`
	ResponseSize   int64   `json:"response_size,omitempty"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
	HTTPVersion    string  `json:"http_version,omitempty"`
}

func (h HTTP) isEmpty() bool { return h == HTTP{} }

// Correlation carries every identifier this record could be grouped by.
type Correlation struct {
	RequestID     string `json:"request_id,omitempty"`
	TraceID       string `json:"trace_id,omitempty"`
	SpanID        string `json:"span_id,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

func (c Correlation) isEmpty() bool { return c == Correlation{} }

// Record is the normalized, immutable-by-convention per-line result. Every
// parser produces one, even for a line it cannot make sense of: in that
// case ParseErrors is non-empty and ParserConfidence is zero, never an
// escaping panic or error return across the line boundary.
type Record struct {
	ID                 uuid.UUID
	Raw                string
	Timestamp          *time.Time
	TimestampPrecision Precision
	Level              Level
	FormatDetected     string
	Message            string
	StructuredData     map[string]any
	Source             Source
	Network            *Network
	HTTP               *HTTP
	Correlation        Correlation
	ParserName         string
	ParserConfidence   float64
	ParseErrors        []string
	Extra              map[string]any
}

// New constructs a Record with sane zero-value defaults: a fresh ID, an
// empty structured-data map, and FormatDetected/Message left for the
// caller (normally a parser) to fill in.
func New(raw string) Record {
	return Record{
		ID:                 uuid.New(),
		Raw:                raw,
		TimestampPrecision: PrecisionUnknown,
		StructuredData:     make(map[string]any),
		Extra:              make(map[string]any),
	}
}

// IsError reports whether the record's level is at least Error severity.
func (r Record) IsError() bool {
	return r.Level >= Error
}

// FormattedTimestamp renders Timestamp using layout (a time.Layout
// reference string), or placeholder when there is no timestamp ("-" when
// placeholder is empty).
func (r Record) FormattedTimestamp(layout, placeholder string) string {
	if r.Timestamp == nil {
		if placeholder == "" {
			return "-"
		}
		return placeholder
	}
	return r.Timestamp.Format(layout)
}
