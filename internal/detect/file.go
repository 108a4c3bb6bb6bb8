package detect

import "github.com/loglens/loglens/internal/source"

// DetectFile samples the first SampleSize non-empty lines of path via the
// regular (non-mmap) file source and detects its format.
func (d *Detector) DetectFile(path string) (string, float64, error) {
	f, err := source.NewFile(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	lines, err := sampleLines(f, SampleSize)
	if err != nil {
		return "", 0, err
	}
	name, confidence := d.Detect(lines)
	return name, confidence, nil
}

func sampleLines(src source.Source, limit int) ([]string, error) {
	lines := make([]string, 0, limit)
	for len(lines) < limit {
		line, ok, err := src.Next()
		if err != nil {
			return lines, err
		}
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
