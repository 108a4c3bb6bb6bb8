// Package applog is this module's own diagnostic logger: RFC 5424
// structured-data log lines for startup, overflow, and error diagnostics,
// as distinct from the record.Record values the rest of the module parses
// out of user log files.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
	"github.com/fatih/color"
)

// Level is this logger's severity, ordered so lower values are noisier.
type Level int

const (
	Off Level = iota
	Debug
	Info
	Warn
	Error
	Critical
)

func (l Level) String() string {
	switch l {
	case Off:
		return "OFF"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

func (l Level) priority() rfc5424.Priority {
	switch l {
	case Debug:
		return rfc5424.User | rfc5424.Debug
	case Info:
		return rfc5424.User | rfc5424.Info
	case Warn:
		return rfc5424.User | rfc5424.Warning
	case Error:
		return rfc5424.User | rfc5424.Error
	case Critical:
		return rfc5424.User | rfc5424.Crit
	default:
		return rfc5424.User | rfc5424.Debug
	}
}

func (l Level) color() *color.Color {
	switch l {
	case Debug:
		return color.New(color.FgHiBlack)
	case Info:
		return color.New(color.FgCyan)
	case Warn:
		return color.New(color.FgYellow)
	case Error:
		return color.New(color.FgRed)
	case Critical:
		return color.New(color.FgHiRed, color.Bold)
	default:
		return color.New()
	}
}

const defaultDepth = 3
const defaultID = "loglens@1"

// Logger writes leveled diagnostic lines to a single writer, either as
// RFC 5424 wire-format messages (for a log file a future machine reader
// might consume) or as a colorized human-readable line (for a console).
type Logger struct {
	mtx      sync.Mutex
	out      io.Writer
	lvl      Level
	hostname string
	appname  string
	console  bool
}

// New builds a Logger writing RFC 5424 lines to w at level Info.
func New(w io.Writer) *Logger {
	l := &Logger{out: w, lvl: Info}
	l.hostname, _ = os.Hostname()
	if len(os.Args) > 0 {
		l.appname = filepath.Base(os.Args[0])
	}
	return l
}

// NewConsole builds a Logger writing colorized human-readable lines to w
// (typically os.Stderr), suited for the CLI's own diagnostics.
func NewConsole(w io.Writer) *Logger {
	l := New(w)
	l.console = true
	return l
}

// SetLevel sets the minimum level that will be written; calls below it
// are silently dropped.
func (l *Logger) SetLevel(lvl Level) { l.mtx.Lock(); l.lvl = lvl; l.mtx.Unlock() }

func (l *Logger) Debugf(f string, args ...interface{}) { l.outputf(Debug, f, args...) }
func (l *Logger) Infof(f string, args ...interface{}) { l.outputf(Info, f, args...) }
func (l *Logger) Warnf(f string, args ...interface{}) { l.outputf(Warn, f, args...) }
func (l *Logger) Errorf(f string, args ...interface{}) { l.outputf(Error, f, args...) }
func (l *Logger) Criticalf(f string, args ...interface{}) { l.outputf(Critical, f, args...) }

// Info writes a structured INFO line carrying the given RFC 5424
// structured-data parameters, e.g. l.Info("orphan overflow", rfc5424.SDParam{Name: "count", Value: "10000"}).
func (l *Logger) Info(msg string, sds ...rfc5424.SDParam) { l.outputStructured(Info, msg, sds...) }
func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam) { l.outputStructured(Warn, msg, sds...) }
func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) {
	l.outputStructured(Error, msg, sds...)
}

func (l *Logger) outputf(lvl Level, f string, args ...interface{}) {
	l.outputStructured(lvl, fmt.Sprintf(f, args...))
}

func (l *Logger) outputStructured(lvl Level, msg string, sds ...rfc5424.SDParam) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.lvl == Off || lvl < l.lvl {
		return
	}
	ts := time.Now()
	loc := callLoc(defaultDepth)
	var line string
	if l.console {
		line = l.consoleLine(ts, loc, lvl, msg)
	} else {
		line = l.rfcLine(ts, loc, lvl, msg, sds...)
	}
	io.WriteString(l.out, strings.TrimRight(line, "\n\t\r")+"\n")
}

func (l *Logger) consoleLine(ts time.Time, loc string, lvl Level, msg string) string {
	tag := lvl.color().Sprintf("%-8s", lvl.String())
	return fmt.Sprintf("%s %s %s %s", ts.UTC().Format(time.RFC3339), tag, loc, msg)
}

func (l *Logger) rfcLine(ts time.Time, loc string, lvl Level, msg string, sds ...rfc5424.SDParam) string {
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: ts,
		Hostname:  trimLength(255, l.hostname),
		AppName:   trimLength(48, l.appname),
		MessageID: trimLength(32, filepath.Base(loc)),
		Message:   []byte(msg),
	}
	if len(sds) > 0 {
		m.StructuredData = []rfc5424.StructuredData{{ID: defaultID, Parameters: sds}}
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return msg
	}
	return string(b)
}

func callLoc(depth int) string {
	if _, file, line, ok := runtime.Caller(depth); ok {
		dir, f := filepath.Split(file)
		return fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(dir), f), line)
	}
	return ""
}

func trimLength(n int, s string) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
