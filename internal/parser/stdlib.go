package parser

import (
	"regexp"

	"github.com/loglens/loglens/internal/record"
)

// The four layouts below are tried in order: threaded, full, alternate,
// simple. Each is anchored so a line matches at most one.
var (
	stdlibThreadedRE = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[.,]\d+) \[([^\]]+)\] (\w+)\s+(\S+) - (.*)$`)
	stdlibFullRE = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[.,]\d+) - (\S+) - (\w+) - (.*)$`)
	stdlibAlternateRE = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[.,]\d+) (\w+) (\S+) (.*)$`)
	stdlibSimpleRE = regexp.MustCompile(`^(\w+):([^:]+):(.*)$`)
)

// StdLib parses the common "language-standard logging" output shared by
// Python's logging module, Java's log4j/logback family, and similar
// frameworks across four ordered layouts.
type StdLib struct{}

func NewStdLib() *StdLib { return &StdLib{} }

func (p *StdLib) Name() string { return "stdlib_logging" }

func (p *StdLib) SupportedFormats() []string {
	return []string{"stdlib_logging", "python_logging", "log4j", "logback"}
}

func (p *StdLib) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	if m := stdlibThreadedRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "stdlib_threaded"
		setStdlibFields(&r, m[1], m[3], m[4], m[5])
		r.Extra["thread"] = m[2]
		r.ParserConfidence = 1.0
		return r
	}
	if m := stdlibFullRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "stdlib_full"
		setStdlibFields(&r, m[1], m[3], m[2], m[4])
		r.ParserConfidence = 1.0
		return r
	}
	if m := stdlibAlternateRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "stdlib_alternate"
		setStdlibFields(&r, m[1], m[2], m[3], m[4])
		r.ParserConfidence = 1.0
		return r
	}
	if m := stdlibSimpleRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "stdlib_simple"
		r.Level = record.ParseLevel(m[1])
		r.Source.Service = m[2]
		r.Message = m[3]
		if r.Level == record.Unknown {
			r.Level = InferLevelFromMessage(r.Message)
		}
		r.ParserConfidence = 1.0
		return r
	}

	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, "line does not match any language-standard logging layout")
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func setStdlibFields(r *record.Record, ts, level, logger, msg string) {
	if t, precision, ok := ParseTimestamp(ts); ok {
		r.Timestamp = &t
		r.TimestampPrecision = precision
	}
	r.Level = record.ParseLevel(level)
	r.Source.Service = logger
	r.Message = msg
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(msg)
	}
}

func (p *StdLib) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		return stdlibThreadedRE.MatchString(line) ||
			stdlibFullRE.MatchString(line) ||
			stdlibAlternateRE.MatchString(line) ||
			stdlibSimpleRE.MatchString(line)
	})
}
