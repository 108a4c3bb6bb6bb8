package detect

import "regexp"

// DefaultSignatures returns the built-in signature set, one per format
// this module's parser registry implements apart from the generic
// fallback. Each is weighted 1.0 except docker_daemon (0.8, damped
// against false positives from its bare key=value fallback pattern) and
// nginx_error and syslog_5424 (1.1).
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:   "json",
			Weight: 1.0,
			IsJSON: true,
		},
		{
			Name:   "apache",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\S+ \S+ \S+ \[[^\]]+\] "[^"]*" \d{3} \S+`),
			},
			SecondaryPatterns: []*regexp.Regexp{
				regexp.MustCompile(`"(GET|POST|PUT|DELETE|HEAD|OPTIONS|PATCH) `),
			},
		},
		{
			Name:   "nginx_access",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\S+ \S+ \S+ \[[^\]]+\] "[^"]*" \d{3} \S+(?: "[^"]*" "[^"]*")?$`),
			},
		},
		{
			Name:   "nginx_error",
			Weight: 1.1,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} \[\w+\] \d+#\d+:`),
			},
		},
		{
			Name:   "syslog_3164",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:<\d+>)?\w{3}\s+\d{1,2} \d{2}:\d{2}:\d{2} \S+ `),
			},
		},
		{
			Name:   "syslog_5424",
			Weight: 1.1,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^<\d{1,3}>\d `),
			},
		},
		{
			Name:   "stdlib_logging",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[.,]\d+ (?:\[[^\]]+\] )?\w+ `),
			},
			SecondaryPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\w+:[^:]+:.*$`),
			},
		},
		{
			Name:   "docker_json",
			Weight: 1.0,
			IsJSON: true,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`"log"\s*:\s*".*"\s*,\s*"stream"\s*:`),
			},
		},
		{
			Name:   "docker_daemon",
			Weight: 0.8,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`time="[^"]+" level=\w+ msg="`),
			},
			SecondaryPatterns: []*regexp.Regexp{
				regexp.MustCompile(`dockerd\[\d+\]:`),
			},
		},
		{
			Name:   "k8s_container",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^\S+Z (stdout|stderr) [FP] `),
			},
		},
		{
			Name:   "k8s_component",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^[IWEF]\d{4} \d{2}:\d{2}:\d{2}\.\d{6}\s+\d+ \S+:\d+\]`),
			},
		},
		{
			Name:   "k8s_audit",
			Weight: 1.0,
			IsJSON: true,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`"apiVersion"\s*:\s*"audit\.k8s\.io`),
			},
		},
		{
			Name:   "k8s_event",
			Weight: 1.0,
			MagicPatterns: []*regexp.Regexp{
				regexp.MustCompile(`"involvedObject"\s*:`),
			},
			SecondaryPatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^\s*\S+\s+(Normal|Warning)\s+\S+\s+\S+\s+.*$`),
			},
		},
	}
}
