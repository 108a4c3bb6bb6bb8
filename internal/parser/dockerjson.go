package parser

import (
	"encoding/json"
	"strings"

	"github.com/loglens/loglens/internal/record"
)

type dockerJSONLine struct {
	Log    string `json:"log"`
	Stream string `json:"stream"`
	Time   string `json:"time"`
}

// DockerJSON parses the json-file log driver's per-line wire format:
// {"log":"...","stream":"stdout","time":"..."}.
type DockerJSON struct{}

func NewDockerJSON() *DockerJSON { return &DockerJSON{} }

func (p *DockerJSON) Name() string { return "docker_json" }

func (p *DockerJSON) SupportedFormats() []string { return []string{"docker_json", "docker"} }

func (p *DockerJSON) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	var dj dockerJSONLine
	if err := json.Unmarshal([]byte(line), &dj); err != nil || dj.Log == "" {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line is not a docker json-file log entry")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}
	r.FormatDetected = "docker_json"
	r.Message = strings.TrimRight(dj.Log, "\n")
	r.Extra["stream"] = dj.Stream
	if t, precision, ok := ParseTimestamp(dj.Time); ok {
		r.Timestamp = &t
		r.TimestampPrecision = precision
	}
	r.Level = InferLevelFromMessage(r.Message)
	if dj.Stream == "stderr" && r.Level == record.Info {
		r.Level = record.Warning
	}
	r.ParserConfidence = 1.0
	return r
}

func (p *DockerJSON) CanParse(sample []string) float64 {
	return fractionMatching(sample, func(line string) bool {
		var dj dockerJSONLine
		return json.Unmarshal([]byte(line), &dj) == nil && dj.Log != ""
	})
}
