package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

// apacheCommonRE captures: host ident authuser [tstamp] "request" status size
var apacheCommonRE = regexp.MustCompile(
	`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+)$`)

// apacheCombinedRE additionally captures a trailing "referer" "user-agent" pair.
var apacheCombinedRE = regexp.MustCompile(
	`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+) "([^"]*)" "([^"]*)"$`)

// Apache parses the common and combined access-log formats, preferring
// combined when the trailing quoted referer/user-agent pair is present.
type Apache struct{}

func NewApache() *Apache { return &Apache{} }

func (p *Apache) Name() string { return "apache" }

func (p *Apache) SupportedFormats() []string {
	return []string{"apache", "apache_common", "apache_combined", "clf"}
}

func (p *Apache) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	if m := apacheCombinedRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "apache_combined"
		fillApacheFields(&r, m[1], m[2], m[3], m[4], m[5], m[6], m[7])
		r.Network = &record.Network{Referer: m[8], UserAgent: m[9]}
		r.ParserConfidence = 1.0
		return r
	}
	if m := apacheCommonRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "apache_common"
		fillApacheFields(&r, m[1], m[2], m[3], m[4], m[5], m[6], m[7])
		r.ParserConfidence = 1.0
		return r
	}

	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, "line does not match apache common or combined layout")
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func fillApacheFields(r *record.Record, host, _, authuser, tstamp, request, status, size string) {
	r.Source.Hostname = host
	if authuser != "-" && authuser != "" {
		r.Correlation.UserID = authuser
	}
	if t, precision, ok := ParseTimestamp(tstamp); ok {
		r.Timestamp = &t
		r.TimestampPrecision = precision
	}
	r.Message = request
	method, path, query, version := splitRequestLine(request)
	statusCode, _ := strconv.Atoi(status)
	var sizeBytes int64
	if size != "-" {
		sizeBytes, _ = strconv.ParseInt(size, 10, 64)
	}
	r.HTTP = &record.HTTP{
		Method:       method,
		Path:         path,
		Query:        query,
		Status:       statusCode,
		ResponseSize: sizeBytes,
		HTTPVersion:  version,
	}
	if statusCode != 0 {
		r.Level = record.LevelFromHTTPStatus(statusCode)
	} else {
		r.Level = InferLevelFromMessage(request)
	}
}

// splitRequestLine parses an HTTP request line ("GET /path?q=1 HTTP/1.1")
// into its method, path, query, and version parts. A request target
// carrying a query string is split on the first "?", matching the
// distinct path/query fields the HTTP sub-record documents.
func splitRequestLine(request string) (method, path, query, version string) {
	fields := requestLineWS.Split(request, 3)
	if len(fields) >= 1 {
		method = fields[0]
	}
	if len(fields) >= 2 {
		pathQuery := fields[1]
		if idx := strings.IndexByte(pathQuery, '?'); idx >= 0 {
			path, query = pathQuery[:idx], pathQuery[idx+1:]
		} else {
			path = pathQuery
		}
	} else {
		path = request
	}
	if len(fields) >= 3 {
		version = fields[2]
	}
	return method, path, query, version
}

var requestLineWS = regexp.MustCompile(`\s+`)

func (p *Apache) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		return apacheCombinedRE.MatchString(line) || apacheCommonRE.MatchString(line)
	})
}
