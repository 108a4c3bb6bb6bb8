package record

import "strings"

// Level is the normalized log severity, totally ordered so that `>=`
// expresses "at least as severe". Unknown compares least of all.
type Level int

const (
	Unknown Level = iota
	Trace
	Debug
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

var levelNames = [...]string{
	Unknown:   "UNKNOWN",
	Trace:     "TRACE",
	Debug:     "DEBUG",
	Info:      "INFO",
	Notice:    "NOTICE",
	Warning:   "WARNING",
	Error:     "ERROR",
	Critical:  "CRITICAL",
	Alert:     "ALERT",
	Emergency: "EMERGENCY",
}

// String returns the canonical uppercase enum name.
func (l Level) String() string {
	if l < Trace || l > Emergency {
		return levelNames[Unknown]
	}
	return levelNames[l]
}

// aliases maps every recognized spelling (canonical names, common
// abbreviations, and single-letter shortcuts) to its Level.
var aliases = map[string]Level{
	"trace":   Trace,
	"t":       Trace,
	"debug":   Debug,
	"d":       Debug,
	"info":    Info,
	"i":       Info,
	"notice":  Notice,
	"n":       Notice,
	"warning": Warning,
	"warn":    Warning,
	"w":       Warning,
	"error":   Error,
	"err":     Error,
	"e":       Error,
	"critical": Critical,
	"crit":     Critical,
	"c":        Critical,
	"fatal":    Critical,
	"alert":    Alert,
	"a":        Alert,
	"emergency": Emergency,
	"emerg":     Emergency,
	"panic":     Emergency,
}

// syslogSeverity is the RFC 5424 / RFC 3164 0-7 severity table.
var syslogSeverity = [...]Level{
	0: Emergency,
	1: Alert,
	2: Critical,
	3: Error,
	4: Warning,
	5: Notice,
	6: Info,
	7: Debug,
}

// ParseLevel parses a level token with locale-insensitive, case-insensitive,
// whitespace-trimmed matching. It recognizes canonical names, common
// aliases (warn/warning, err/error, fatal->critical, emerg->emergency,
// panic->emergency), single-letter shortcuts, and the numeric RFC 5424
// severities 0-7. Unrecognized input yields Unknown.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unknown
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '7' {
		return syslogSeverity[s[0]-'0']
	}
	if lvl, ok := aliases[s]; ok {
		return lvl
	}
	return Unknown
}

// SeverityFromSyslog maps an RFC 5424/3164 numeric severity (0-7) to Level.
func SeverityFromSyslog(sev int) Level {
	if sev < 0 || sev > 7 {
		return Unknown
	}
	return syslogSeverity[sev]
}

// LevelFromHTTPStatus maps an HTTP status code to a level: >=500 Error,
// >=400 Warning, else Info.
func LevelFromHTTPStatus(status int) Level {
	switch {
	case status >= 500:
		return Error
	case status >= 400:
		return Warning
	default:
		return Info
	}
}
