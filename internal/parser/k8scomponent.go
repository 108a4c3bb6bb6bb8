package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/loglens/loglens/internal/record"
)

// klogRE captures: LMMDD HH:MM:SS.uuuuuu PID file:line] msg
var klogRE = regexp.MustCompile(
	`^([IWEF])(\d{2})(\d{2}) (\d{2}:\d{2}:\d{2})\.(\d{6})\s+(\d+) (\S+):(\d+)\] (.*)$`)

var klogLevelMap = map[string]record.Level{
	"I": record.Info,
	"W": record.Warning,
	"E": record.Error,
	"F": record.Critical,
}

// K8sComponent parses the klog format used by Kubernetes control-plane
// components (kube-apiserver, kube-scheduler, kubelet, ...).
type K8sComponent struct {
	Now func() time.Time
}

func NewK8sComponent() *K8sComponent { return &K8sComponent{} }

func (p *K8sComponent) Name() string { return "k8s_component" }

func (p *K8sComponent) SupportedFormats() []string { return []string{"k8s_component", "klog"} }

func (p *K8sComponent) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *K8sComponent) ParseLine(line string) record.Record {
	r := record.New(line)
	r.ParserName = p.Name()

	m := klogRE.FindStringSubmatch(line)
	if m == nil {
		r.Message = truncate(line, 200)
		r.ParserConfidence = 0
		r.ParseErrors = append(r.ParseErrors, "line does not match klog layout")
		r.Level = InferLevelFromMessage(r.Message)
		return r
	}
	r.FormatDetected = "k8s_component"
	r.Level = klogLevelMap[m[1]]

	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	clock, err := time.Parse("15:04:05.000000", m[4]+"."+m[5])
	if err == nil {
		now := p.now()
		approx := time.Date(now.Year(), time.Month(month), day, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), time.UTC)
		reconstructed := ReconstructYear(approx, now)
		r.Timestamp = &reconstructed
		r.TimestampPrecision = record.PrecisionMicro
	}

	pid, _ := strconv.Atoi(m[6])
	r.Extra["pid"] = pid
	r.Extra["source_file"] = m[7]
	r.Extra["source_line"], _ = strconv.Atoi(m[8])
	r.Message = m[9]
	r.ParserConfidence = 1.0
	return r
}

func (p *K8sComponent) CanParse(sample []string) float64 {
	return fractionMatching(sample, klogRE.MatchString)
}
