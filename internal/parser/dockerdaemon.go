package parser

import (
	"regexp"
	"time"

	"github.com/loglens/loglens/internal/record"
)

// logfmtPairRE matches one key=value or key="quoted value" token.
var logfmtPairRE = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\S+))`)

var dockerDaemonJournalRE = regexp.MustCompile(
	`^(\w{3}\s+\d{1,2} \d{2}:\d{2}:\d{2}) (\S+) dockerd\[(\d+)\]: (.*)$`)

// DockerDaemon parses the dockerd process's own log output, which appears
// in one of three shapes depending on how the daemon is run: logfmt
// key=value pairs, systemd-journal prefixed lines, or unadorned key=value
// text with no recognizable envelope.
type DockerDaemon struct{}

func NewDockerDaemon() *DockerDaemon { return &DockerDaemon{} }

func (p *DockerDaemon) Name() string { return "docker_daemon" }

func (p *DockerDaemon) SupportedFormats() []string { return []string{"docker_daemon", "dockerd"} }

func (p *DockerDaemon) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	if pairs := logfmtPairRE.FindAllStringSubmatch(line, -1); len(pairs) > 0 && hasLogfmtEnvelope(pairs) {
		r.FormatDetected = "docker_daemon_logfmt"
		applyLogfmtPairs(&r, pairs)
		r.ParserConfidence = 1.0
		return r
	}

	if m := dockerDaemonJournalRE.FindStringSubmatch(line); m != nil {
		r.FormatDetected = "docker_daemon_journal"
		if t, precision, ok := ParseTimestamp(m[1]); ok {
			ts := ReconstructYear(t, time.Now())
			r.Timestamp = &ts
			r.TimestampPrecision = precision
		}
		r.Source.Hostname = m[2]
		r.Message = m[4]
		r.Level = InferLevelFromMessage(r.Message)
		r.ParserConfidence = 1.0
		return r
	}

	if pairs := logfmtPairRE.FindAllStringSubmatch(line, -1); len(pairs) > 0 {
		r.FormatDetected = "docker_daemon_kv"
		applyLogfmtPairs(&r, pairs)
		r.ParserConfidence = 0.6
		return r
	}

	r.Message = truncate(line, 200)
	r.ParserConfidence = 0
	r.ParseErrors = append(r.ParseErrors, "line does not match any dockerd output layout")
	r.Level = InferLevelFromMessage(r.Message)
	return r
}

func hasLogfmtEnvelope(pairs [][]string) bool {
	for _, m := range pairs {
		if m[1] == "time" || m[1] == "level" {
			return true
		}
	}
	return false
}

func applyLogfmtPairs(r *record.Record, pairs [][]string) {
	for _, m := range pairs {
		key := m[1]
		val := m[2]
		if val == "" {
			val = m[3]
		}
		switch key {
		case "time":
			if t, precision, ok := ParseTimestamp(val); ok {
				r.Timestamp = &t
				r.TimestampPrecision = precision
			}
		case "level":
			r.Level = record.ParseLevel(val)
		case "msg":
			r.Message = val
		default:
			r.Extra[key] = val
		}
	}
	if r.Message == "" {
		r.Message = truncate(r.Raw, 200)
	}
	if r.Level == record.Unknown {
		r.Level = InferLevelFromMessage(r.Message)
	}
}

func (p *DockerDaemon) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		if dockerDaemonJournalRE.MatchString(line) {
			return true
		}
		return len(logfmtPairRE.FindAllStringSubmatch(line, -1)) > 0
	})
}
