package parser

import (
	"regexp"

	"github.com/loglens/loglens/internal/record"
)

// nginxAccessRE mirrors apacheCombinedRE but treats the trailing
// referer/user-agent pair as optional, matching nginx's stock
// log_format combined where some deployments trim it.
var nginxAccessRE = regexp.MustCompile(
	`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+)(?: "([^"]*)" "([^"]*)")?$`)

// NginxAccess parses nginx's combined access log format.
type NginxAccess struct{}

func NewNginxAccess() *NginxAccess { return &NginxAccess{} }

func (p *NginxAccess) Name() string { return "nginx_access" }

func (p *NginxAccess) SupportedFormats() []string { return []string{"nginx", "nginx_access"} }

func (p *NginxAccess) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	m := nginxAccessRE.FindStringSubmatch(line)
	if m == nil {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line does not match nginx access layout")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}
	r.FormatDetected = "nginx_access"
	fillApacheFields(&r, m[1], m[2], m[3], m[4], m[5], m[6], m[7])
	if m[8] != "" || m[9] != "" {
		r.Network = &record.Network{Referer: m[8], UserAgent: m[9]}
	}
	r.ParserConfidence = 1.0
	return r
}

func (p *NginxAccess) CanParse(sample []string) float64 {
	return fractionMatching(sample, nginxAccessRE.MatchString)
}

// nginxErrorRE captures: YYYY/MM/DD HH:MM:SS [level] PID#TID: *CID message
var nginxErrorRE = regexp.MustCompile(
	`^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}) \[(\w+)\] (\d+)#(\d+): (?:\*(\d+) )?(.*)$`)

var nginxLevelMap = map[string]record.Level{
	"debug":  record.Debug,
	"info":   record.Info,
	"notice": record.Notice,
	"warn":   record.Warning,
	"error":  record.Error,
	"crit":   record.Critical,
	"alert":  record.Alert,
	"emerg":  record.Emergency,
}

// NginxError parses nginx's error log format.
type NginxError struct{}

func NewNginxError() *NginxError { return &NginxError{} }

func (p *NginxError) Name() string { return "nginx_error" }

func (p *NginxError) SupportedFormats() []string { return []string{"nginx_error"} }

func (p *NginxError) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	m := nginxErrorRE.FindStringSubmatch(line)
	if m == nil {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line does not match nginx error layout")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}
	r.FormatDetected = "nginx_error"
	if t, precision, ok := ParseTimestamp(m[1]); ok {
		r.Timestamp = &t
		r.TimestampPrecision = precision
	}
	if lvl, ok := nginxLevelMap[m[2]]; ok {
		r.Level = lvl
	} else {
		r.Level = InferLevelFromMessage(m[6])
	}
	if m[5] != "" {
		r.Correlation.RequestID = m[5]
	}
	r.Message = m[6]
	r.ParserConfidence = 1.0
	return r
}

func (p *NginxError) CanParse(sample []string) float64 {
	return fractionMatching(sample, nginxErrorRE.MatchString)
}
