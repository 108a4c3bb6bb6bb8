// Package api wires sources, the parser registry, the detector, the
// normalization pipeline, and correlation strategies behind the four
// public contracts this module exposes: DetectFormat, Parse, StreamParse,
// and Correlate. cmd/loglens is a thin cobra front end over this package
// and contributes no parsing or correlation logic of its own.
package api

import (
	"github.com/loglens/loglens/internal/correlate"
	"github.com/loglens/loglens/internal/detect"
	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/normalize"
	"github.com/loglens/loglens/internal/parser"
	"github.com/loglens/loglens/internal/record"
	"github.com/loglens/loglens/internal/source"
)

// DefaultRegistry and DefaultDetector are shared across callers that
// don't need a customized parser/signature set.
var (
	DefaultRegistry = parser.NewDefaultRegistry()
	DefaultDetector = detect.NewDetector(detect.DefaultSignatures())
)

// DetectFormat samples path and returns the best-guess format name and
// its confidence in [0, 1].
func DetectFormat(path string) (string, float64, error) {
	return DefaultDetector.DetectFile(path)
}

// DetectAllFormats samples path and scores every registered signature,
// ranked highest-confidence first, for the CLI's detect --all view.
func DetectAllFormats(path string) ([]detect.Result, error) {
	f, err := source.NewFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	for len(lines) < detect.SampleSize {
		line, ok, err := f.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return DefaultDetector.DetectAll(lines), nil
}

// resolveParser returns the parser named format, or auto-detects one from
// path's content when format is empty.
func resolveParser(path, format string) (parser.Parser, string, error) {
	if format != "" {
		p, ok := DefaultRegistry.GetParser(format)
		if !ok {
			return nil, "", errs.NewConfigurationError("unknown format: " + format)
		}
		return p, format, nil
	}
	name, _, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	p, ok := DefaultRegistry.GetParser(name)
	if !ok {
		p, ok = DefaultRegistry.Generic()
		if !ok {
			return nil, "", errs.NewConfigurationError("no parser registered for detected format: " + name)
		}
		name = p.Name()
	}
	return p, name, nil
}

// DefaultPipeline builds the normalization pipeline enabled by parse's
// --normalize flag (ParseOptions.Normalize): timestamp-to-UTC, then level
// inference from structured-data hints. StreamParse does not apply it.
func DefaultPipeline() *normalize.Pipeline {
	return normalize.NewPipeline(
		normalize.NewTimestampStep(nil),
		normalize.NewLevelStep(),
	)
}

// ParseOptions configures Parse/StreamParse.
type ParseOptions struct {
	Format    string
	Normalize bool
}

// Parse realizes every line of path into an in-memory []record.Record,
// selecting a parser by detection when opts.Format is empty.
func Parse(path string, opts ParseOptions) ([]record.Record, error) {
	p, formatName, err := resolveParser(path, opts.Format)
	if err != nil {
		return nil, err
	}
	src, err := source.NewFile(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var records []record.Record
	lineNo := 0
	for {
		line, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		lineNo++
		if line == "" {
			continue
		}
		r := p.ParseLine(line)
		if r.FormatDetected == "" {
			r.FormatDetected = formatName
		}
		r.Source.FilePath = path
		r.Source.LineNumber = lineNo
		records = append(records, r)
	}
	if opts.Normalize {
		records, err = DefaultPipeline().Process(records)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// ProgressFunc reports StreamParse progress, mirroring source.ProgressFunc.
type ProgressFunc func(bytesRead, totalBytes, linesRead int64)

// StreamParse parses path one line at a time, calling onEach per record
// and onProgress (if non-nil) periodically. format is required: unlike
// Parse, StreamParse never runs detection, since detection itself must
// sample lines ahead of the stream it would then have to rewind.
// Files above source.LargeFileThreshold use the memory-mapped source.
func StreamParse(path, format string, onEach func(record.Record), onProgress ProgressFunc) error {
	if format == "" {
		return errs.NewConfigurationError("stream parsing requires an explicit format")
	}
	p, ok := DefaultRegistry.GetParser(format)
	if !ok {
		return errs.NewConfigurationError("unknown format: " + format)
	}

	large, err := source.NewLarge(path)
	if err != nil {
		return err
	}
	var src source.Source = large
	if onProgress != nil {
		src = source.NewChunked(large, source.ProgressFunc(onProgress), 0)
	}
	defer src.Close()

	lineNo := 0
	for {
		line, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		lineNo++
		if line == "" {
			continue
		}
		r := p.ParseLine(line)
		if r.FormatDetected == "" {
			r.FormatDetected = format
		}
		r.Source.FilePath = path
		r.Source.LineNumber = lineNo
		onEach(r)
	}
	return nil
}

// CorrelateOptions configures Correlate.
type CorrelateOptions struct {
	Strategy      string // request_id | timestamp | session | all
	Format        string
	WindowSeconds float64
}

// Correlate parses every path (auto-detecting per file when Format is
// empty), merges the resulting streams by timestamp, and runs the
// requested strategy (or all three, in the shared-record-claim order)
// over the merge.
func Correlate(paths []string, opts CorrelateOptions) (correlate.Result, error) {
	if len(paths) < 2 {
		return correlate.Result{}, errs.NewConfigurationError("correlate requires at least two files")
	}

	var iterators []correlate.RecordIterator
	for _, path := range paths {
		records, err := Parse(path, ParseOptions{Format: opts.Format})
		if err != nil {
			return correlate.Result{}, err
		}
		iterators = append(iterators, correlate.NewSliceIterator(records))
	}
	merged := correlate.Merge(iterators)

	strategy, err := resolveStrategy(opts.Strategy, opts.WindowSeconds)
	if err != nil {
		return correlate.Result{}, err
	}
	return strategy.Correlate(merged, correlate.DefaultBufferSize), nil
}

func resolveStrategy(name string, windowSeconds float64) (correlate.Strategy, error) {
	switch name {
	case "", "all":
		return correlate.NewDefaultMultiStrategy(), nil
	case "request_id":
		return correlate.NewSharedIdentifierStrategy(), nil
	case "timestamp":
		s := correlate.NewTimestampWindowStrategy()
		if windowSeconds > 0 {
			s.WindowSeconds = windowSeconds
		}
		return s, nil
	case "session":
		return correlate.NewSessionStrategy(), nil
	default:
		return nil, errs.NewConfigurationError("unknown correlation strategy: " + name)
	}
}
