package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// AnalyzeFile reads one .sql file and produces its report. Invalid byte
// sequences are replaced rather than rejected, so half-broken exports from
// legacy systems still get analyzed.
func AnalyzeFile(path, fkPrefix string) (*FileReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	return AnalyzeText(path, text, fkPrefix), nil
}

// AnalyzeText runs the scan + classify passes over already-loaded SQL text.
func AnalyzeText(path, text, fkPrefix string) *FileReport {
	filename := filepath.Base(path)

	report := &FileReport{
		Path:     path,
		Filename: filename,
		Database: databaseNameOrStem(text, filename),
		Content:  text,
		Lines:    strings.Count(text, "\n") + 1,
		Bytes:    len(text),
	}

	report.Tables, report.Skipped = NewScanner(fkPrefix).Scan(text)
	for _, t := range report.Tables {
		report.Findings = append(report.Findings, Classify(t)...)
	}
	return report
}

// Summarize folds per-file reports into the run-level totals. The
// accumulator is built and returned here; nothing aggregates through
// package state between runs.
func Summarize(files []*FileReport, failures []Failure) *RunReport {
	run := &RunReport{
		Files:       files,
		Failures:    failures,
		ByKind:      make(map[Kind]int),
		GeneratedAt: time.Now(),
	}
	for _, f := range files {
		run.TotalTables += len(f.Tables)
		run.TotalLines += f.Lines
		run.TotalBytes += f.Bytes
		run.TotalFindings += len(f.Findings)
		for _, finding := range f.Findings {
			run.ByKind[finding.Kind]++
		}
	}
	return run
}

func databaseNameOrStem(text, filename string) string {
	if name := DatabaseName(text); name != "" {
		return name
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
