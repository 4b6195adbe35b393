package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind enumerates the anomaly rules. Declaration order is the canonical
// presentation order for a table's findings.
type Kind int

const (
	MissingPrimaryKey Kind = iota
	MissingIndex
	SingleColumnTable
	SuspectMissingForeignKey
	LongTableName
	NullableColumns

	kindCount
)

// MaxTableNameLen is the longest table name that passes without a finding.
const MaxTableNameLen = 30

// Kinds returns every anomaly kind in canonical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	switch k {
	case MissingPrimaryKey:
		return "missing_primary_key"
	case MissingIndex:
		return "missing_index"
	case SingleColumnTable:
		return "single_column_table"
	case SuspectMissingForeignKey:
		return "suspect_missing_foreign_key"
	case LongTableName:
		return "long_table_name"
	case NullableColumns:
		return "nullable_columns"
	}
	return "unknown"
}

// Label is the human-readable form used in the console summary and report.
func (k Kind) Label() string {
	switch k {
	case MissingPrimaryKey:
		return "Tables without primary keys"
	case MissingIndex:
		return "Tables without indexes"
	case SingleColumnTable:
		return "Single column tables"
	case SuspectMissingForeignKey:
		return "Potential missing foreign keys"
	case LongTableName:
		return "Long table names (>30 chars)"
	case NullableColumns:
		return "Nullable columns"
	}
	return "Unknown"
}

// Classify applies the fixed rule set to one table. Rules are independent,
// all applicable rules fire, and the result is a pure function of the
// record: identical input yields identical, order-stable findings. Every
// rule is advisory only.
func Classify(t *Table) []Finding {
	var findings []Finding
	add := func(kind Kind, detail string) {
		findings = append(findings, Finding{Table: t.Name, Kind: kind, Detail: detail})
	}

	if !t.HasPrimaryKey {
		add(MissingPrimaryKey, "")
	}
	if !t.HasIndex {
		add(MissingIndex, "")
	}
	if len(t.Columns) == 1 {
		add(SingleColumnTable, t.Columns[0].Name)
	}
	if len(t.FKLikeColumns) > 0 {
		add(SuspectMissingForeignKey, strings.Join(t.FKLikeColumns, ", "))
	}
	if n := utf8.RuneCountInString(t.Name); n > MaxTableNameLen {
		add(LongTableName, fmt.Sprintf("%d chars", n))
	}
	if nullable := nullableNames(t); len(nullable) > 0 {
		add(NullableColumns, strings.Join(nullable, ", "))
	}

	return findings
}

func nullableNames(t *Table) []string {
	var names []string
	for _, c := range t.Columns {
		if c.Nullable {
			names = append(names, c.Name)
		}
	}
	return names
}
