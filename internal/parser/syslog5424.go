package parser

import (
	"regexp"
	"strings"

	"github.com/crewjam/rfc5424"
	"github.com/loglens/loglens/internal/record"
)

// rfc5424Shape is a loose pre-filter so CanParse doesn't pay for a full
// unmarshal on every candidate line: <PRI>VERSION then a timestamp-ish token.
var rfc5424Shape = regexp.MustCompile(`^<\d{1,3}>\d `)

// Syslog5424 parses the structured syslog wire format (RFC 5424),
// running the same crewjam/rfc5424 codec applog uses for emission in
// reverse: unmarshaling instead of marshaling.
type Syslog5424 struct{}

func NewSyslog5424() *Syslog5424 { return &Syslog5424{} }

func (p *Syslog5424) Name() string { return "syslog_5424" }

func (p *Syslog5424) SupportedFormats() []string { return []string{"syslog_5424", "rfc5424"} }

func (p *Syslog5424) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	if !rfc5424Shape.MatchString(line) {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line does not match RFC 5424 syslog layout")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}

	var msg rfc5424.Message
	if err := msg.UnmarshalBinary([]byte(line)); err != nil {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "RFC 5424 unmarshal failed: "+err.Error())
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}

	r.FormatDetected = "syslog_5424"
	severity := int(msg.Priority) & 0x7
	facility := int(msg.Priority) >> 3
	r.Level = record.SeverityFromSyslog(severity)
	r.Extra["facility"] = facility

	if !msg.Timestamp.IsZero() {
		ts := msg.Timestamp
		r.Timestamp = &ts
		r.TimestampPrecision = record.PrecisionSecond
		if fields := strings.SplitN(line, " ", 3); len(fields) >= 2 {
			if _, prec, ok := ParseTimestamp(fields[1]); ok {
				r.TimestampPrecision = prec
			}
		}
	}
	if msg.Hostname != "" && msg.Hostname != "-" {
		r.Source.Hostname = msg.Hostname
	}
	if msg.AppName != "" && msg.AppName != "-" {
		r.Source.Service = msg.AppName
	}
	if msg.ProcessID != "" && msg.ProcessID != "-" {
		r.Extra["proc_id"] = msg.ProcessID
	}
	if msg.MessageID != "" && msg.MessageID != "-" {
		r.Extra["msg_id"] = msg.MessageID
	}

	if len(msg.StructuredData) > 0 {
		sd := make(map[string]any, len(msg.StructuredData))
		for _, block := range msg.StructuredData {
			kv := make(map[string]string, len(block.Parameters))
			for _, param := range block.Parameters {
				kv[param.Name] = param.Value
			}
			sd[block.ID] = kv
		}
		r.StructuredData = sd
	}

	r.Message = string(msg.Message)
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(r.Message)
	}
	r.ParserConfidence = 1.0
	return r
}

func (p *Syslog5424) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		if !rfc5424Shape.MatchString(line) {
			return false
		}
		var msg rfc5424.Message
		return msg.UnmarshalBinary([]byte(line)) == nil
	})
}
