package parser

import (
	"regexp"
	"time"

	"github.com/gravwell/syslogparser"
	"github.com/gravwell/syslogparser/rfc3164"

	"github.com/loglens/loglens/internal/record"
)

// bsdShape is a loose pre-filter so CanParse doesn't pay for a full codec
// crack on every candidate line: an optional <PRI> then a BSD timestamp.
var bsdShape = regexp.MustCompile(`^(?:<\d{1,3}>)?\w{3}\s+\d{1,2} \d{2}:\d{2}:\d{2} `)

// Syslog3164 parses the legacy BSD syslog wire format (RFC 3164) through
// the gravwell/syslogparser codec. Lines carrying no <PRI> are still
// legal per RFC 3164 section 4.3.3, which directs relays to assume
// priority 13; those get the default prepended so the codec can crack
// the rest, and the assumed severity is not reported as a level.
type Syslog3164 struct {
	// Now anchors the year reconstruction for the wire format's year-less
	// timestamps; defaults to time.Now when nil, overridable in tests for
	// determinism.
	Now func() time.Time
}

func NewSyslog3164() *Syslog3164 { return &Syslog3164{} }

func (p *Syslog3164) Name() string { return "syslog_3164" }

func (p *Syslog3164) SupportedFormats() []string { return []string{"syslog", "syslog_3164", "bsd_syslog"} }

func (p *Syslog3164) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Syslog3164) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	if !bsdShape.MatchString(line) {
		return fail3164(r, line, "line does not match RFC 3164 syslog layout")
	}

	data := []byte(line)
	assumedPri := false
	if tp, err := syslogparser.DetectRFC(data); err != nil || tp != syslogparser.RFC_3164 {
		data = append([]byte("<13>"), data...)
		assumedPri = true
	}
	sp := rfc3164.NewParser(data)
	if err := sp.Parse(); err != nil {
		return fail3164(r, line, "RFC 3164 parse failed: "+err.Error())
	}
	parts := sp.Dump()

	r.FormatDetected = "syslog_3164"
	if !assumedPri {
		if sev, ok := parts["Severity"].(int); ok {
			r.Level = record.SeverityFromSyslog(sev)
		}
		if fac, ok := parts["Facility"].(int); ok {
			r.Extra["facility"] = fac
		}
	}
	if ts, ok := parts["Timestamp"].(time.Time); ok && !ts.IsZero() {
		reconstructed := ReconstructYear(ts, p.now())
		r.Timestamp = &reconstructed
		r.TimestampPrecision = record.PrecisionSecond
	}
	if host, ok := parts["Hostname"].(string); ok && host != "" {
		r.Source.Hostname = host
	}
	if tag, ok := parts["Appname"].(string); ok && tag != "" {
		r.Extra["tag"] = tag
	}
	if content, ok := parts["Message"].(string); ok {
		r.Message = content
	}
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(r.Message)
	}
	r.ParserConfidence = 1.0
	return r
}

func fail3164(r record.Record, line, reason string) record.Record {
	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, reason)
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func (p *Syslog3164) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		if !bsdShape.MatchString(line) {
			return false
		}
		data := []byte(line)
		if tp, err := syslogparser.DetectRFC(data); err != nil || tp != syslogparser.RFC_3164 {
			data = append([]byte("<13>"), data...)
		}
		return rfc3164.NewParser(data).Parse() == nil
	})
}
