package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/record"
	"github.com/loglens/loglens/internal/safety"
)

// writeRecords renders records to w in the requested output mode.
func writeRecords(w io.Writer, records []record.Record, mode string) error {
	switch mode {
	case "", "table":
		return writeRecordsTable(w, records)
	case "json":
		return writeRecordsJSON(w, records)
	case "csv":
		return writeRecordsCSV(w, records)
	case "compact":
		return writeRecordsCompact(w, records)
	default:
		return errs.NewConfigurationError("unknown output mode: " + mode)
	}
}

func writeRecordsTable(w io.Writer, records []record.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tLEVEL\tFORMAT\tMESSAGE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.FormattedTimestamp("2006-01-02T15:04:05Z07:00", "-"),
			r.Level.String(),
			r.FormatDetected,
			truncateForTable(r.Message, 120))
	}
	return tw.Flush()
}

func truncateForTable(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func writeRecordsJSON(w io.Writer, records []record.Record) error {
	mappings := make([]map[string]any, 0, len(records))
	for _, r := range records {
		mappings = append(mappings, r.ToMapping())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mappings)
}

func writeRecordsCompact(w io.Writer, records []record.Record) error {
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s [%s] %s\n", r.FormattedTimestamp("2006-01-02T15:04:05Z07:00", "-"), r.Level.String(), r.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeRecordsCSV renders the documented CSV columns, passing every cell
// through the formula-injection guard.
func writeRecordsCSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "level", "message", "source_file", "line_number", "service", "format"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.FormattedTimestamp("2006-01-02T15:04:05Z07:00", ""),
			r.Level.String(),
			r.Message,
			r.Source.FilePath,
			strconv.Itoa(r.Source.LineNumber),
			r.Source.Service,
			r.FormatDetected,
		}
		for i, cell := range row {
			row[i] = safety.EscapeCSVCell(cell)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
