package schema

import "time"

type Table struct {
	Name          string
	Columns       []*Column
	HasPrimaryKey bool
	HasIndex      bool
	HasForeignKey bool
	FKLikeColumns []string // FK-naming-convention columns with no FOREIGN KEY constraint backing them
}

type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Finding is one detected anomaly. Never mutated after creation.
type Finding struct {
	Table  string
	Kind   Kind
	Detail string
}

// FileReport holds everything extracted from a single .sql file.
type FileReport struct {
	Path     string
	Filename string
	Database string
	Content  string
	Lines    int
	Bytes    int
	Tables   []*Table
	Findings []Finding
	Skipped  int // malformed CREATE TABLE spans that were dropped
}

// Failure records a file that could not be read. The run continues without it.
type Failure struct {
	Path string
	Err  error
}

// RunReport aggregates all files of one invocation.
type RunReport struct {
	Files         []*FileReport
	Failures      []Failure
	TotalTables   int
	TotalLines    int
	TotalBytes    int
	TotalFindings int
	ByKind        map[Kind]int
	GeneratedAt   time.Time
}

// AnomalyCount is the number of findings in one file.
func (f *FileReport) AnomalyCount() int {
	return len(f.Findings)
}

// CountByKind tallies a file's findings per anomaly kind.
func (f *FileReport) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, finding := range f.Findings {
		counts[finding.Kind]++
	}
	return counts
}
