package schema_test

import (
	"reflect"
	"strings"
	"testing"

	"sql-audit/internal/schema"
)

func kindsOf(findings []schema.Finding) []schema.Kind {
	var kinds []schema.Kind
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func classifySQL(t *testing.T, sql string) []schema.Finding {
	t.Helper()
	tables, _ := schema.NewScanner("").Scan(sql)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	return schema.Classify(tables[0])
}

func TestClassify_BareSingleColumnTable(t *testing.T) {
	findings := classifySQL(t, "CREATE TABLE t (id INT)")

	want := []schema.Kind{
		schema.MissingPrimaryKey,
		schema.MissingIndex,
		schema.SingleColumnTable,
		schema.NullableColumns,
	}
	if !reflect.DeepEqual(kindsOf(findings), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(findings), want)
	}

	for _, f := range findings {
		switch f.Kind {
		case schema.SingleColumnTable, schema.NullableColumns:
			if f.Detail != "id" {
				t.Errorf("%s detail = %q, want id", f.Kind, f.Detail)
			}
		}
	}
}

func TestClassify_CleanTableHasNoFindings(t *testing.T) {
	sql := `
CREATE TABLE orders (order_id INT PRIMARY KEY, customer_id INT NOT NULL);
CREATE INDEX idx ON orders(customer_id);
`
	tables, _ := schema.NewScanner("").Scan(sql)
	if findings := schema.Classify(tables[0]); len(findings) != 0 {
		t.Errorf("expected no findings for orders, got %v", kindsOf(findings))
	}
}

func TestClassify_LongTableNameBoundary(t *testing.T) {
	at30 := strings.Repeat("A", 30)
	over30 := strings.Repeat("A", 31)

	findings := classifySQL(t, "CREATE TABLE "+at30+" (id INT PRIMARY KEY, INDEX i (id))")
	for _, f := range findings {
		if f.Kind == schema.LongTableName {
			t.Error("exactly 30 characters must not trigger long_table_name")
		}
	}

	findings = classifySQL(t, "CREATE TABLE "+over30+" (id INT PRIMARY KEY, INDEX i (id))")
	found := false
	for _, f := range findings {
		if f.Kind == schema.LongTableName {
			found = true
			if f.Detail != "31 chars" {
				t.Errorf("detail = %q, want \"31 chars\"", f.Detail)
			}
		}
	}
	if !found {
		t.Error("31 characters should trigger long_table_name")
	}
}

func TestClassify_LongTableNameCountsRunes(t *testing.T) {
	// 30 characters but 60 bytes: must not fire, and any count reported
	// for longer names is in characters, not bytes.
	name30 := strings.Repeat("é", 30)
	findings := classifySQL(t, "CREATE TABLE "+name30+" (id INT PRIMARY KEY, INDEX i (id))")
	for _, f := range findings {
		if f.Kind == schema.LongTableName {
			t.Error("30 multibyte characters must not trigger long_table_name")
		}
	}

	name31 := strings.Repeat("é", 31)
	findings = classifySQL(t, "CREATE TABLE "+name31+" (id INT PRIMARY KEY, INDEX i (id))")
	found := false
	for _, f := range findings {
		if f.Kind == schema.LongTableName {
			found = true
			if f.Detail != "31 chars" {
				t.Errorf("detail = %q, want \"31 chars\"", f.Detail)
			}
		}
	}
	if !found {
		t.Error("31 multibyte characters should trigger long_table_name")
	}
}

func TestClassify_LongNameWithSuspectForeignKey(t *testing.T) {
	name := strings.Repeat("B", 35)
	findings := classifySQL(t, "CREATE TABLE "+name+" (id INT, FKY_customer INT)")

	want := []schema.Kind{
		schema.MissingPrimaryKey,
		schema.MissingIndex,
		schema.SuspectMissingForeignKey,
		schema.LongTableName,
		schema.NullableColumns,
	}
	if !reflect.DeepEqual(kindsOf(findings), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(findings), want)
	}
}

func TestClassify_PureAndOrderStable(t *testing.T) {
	tables, _ := schema.NewScanner("").Scan("CREATE TABLE t (id INT, FKY_ORDER INT)")

	first := schema.Classify(tables[0])
	second := schema.Classify(tables[0])
	if !reflect.DeepEqual(first, second) {
		t.Error("classifying the same record twice produced different findings")
	}

	// Findings follow the canonical kind order.
	for i := 1; i < len(first); i++ {
		if first[i].Kind < first[i-1].Kind {
			t.Errorf("findings out of canonical order: %v", kindsOf(first))
		}
	}
}

func TestAnalyzeText_FileFacts(t *testing.T) {
	sql := "CREATE DATABASE SHOP;\nCREATE TABLE t (id INT);\n"
	fr := schema.AnalyzeText("schemas/shop.sql", sql, "")

	if fr.Database != "SHOP" {
		t.Errorf("Database = %q, want SHOP", fr.Database)
	}
	if fr.Filename != "shop.sql" {
		t.Errorf("Filename = %q, want shop.sql", fr.Filename)
	}
	if fr.Lines != 3 {
		t.Errorf("Lines = %d, want 3", fr.Lines)
	}
	if fr.Bytes != len(sql) {
		t.Errorf("Bytes = %d, want %d", fr.Bytes, len(sql))
	}
	if len(fr.Tables) != 1 {
		t.Errorf("Tables = %d, want 1", len(fr.Tables))
	}
}

func TestAnalyzeText_DatabaseNameFallsBackToFilename(t *testing.T) {
	fr := schema.AnalyzeText("inventory.sql", "CREATE TABLE t (id INT);", "")
	if fr.Database != "inventory" {
		t.Errorf("Database = %q, want inventory", fr.Database)
	}
}

func TestSummarize_FoldsTotals(t *testing.T) {
	a := schema.AnalyzeText("a.sql", "CREATE TABLE x (id INT);\n", "")
	b := schema.AnalyzeText("b.sql", `
CREATE TABLE orders (order_id INT PRIMARY KEY, customer_id INT NOT NULL);
CREATE INDEX idx ON orders(customer_id);
`, "")

	run := schema.Summarize([]*schema.FileReport{a, b}, nil)

	if run.TotalTables != 2 {
		t.Errorf("TotalTables = %d, want 2", run.TotalTables)
	}
	if run.TotalLines != a.Lines+b.Lines {
		t.Errorf("TotalLines = %d, want %d", run.TotalLines, a.Lines+b.Lines)
	}
	if run.TotalBytes != a.Bytes+b.Bytes {
		t.Errorf("TotalBytes = %d, want %d", run.TotalBytes, a.Bytes+b.Bytes)
	}
	// All anomalies come from a.sql: no PK, no index, single column, nullable.
	if run.TotalFindings != 4 {
		t.Errorf("TotalFindings = %d, want 4", run.TotalFindings)
	}
	if run.ByKind[schema.MissingPrimaryKey] != 1 || run.ByKind[schema.NullableColumns] != 1 {
		t.Errorf("unexpected per-kind totals: %v", run.ByKind)
	}
}

func TestSummarize_KeepsFailures(t *testing.T) {
	run := schema.Summarize(nil, []schema.Failure{{Path: "bad.sql"}})
	if len(run.Failures) != 1 {
		t.Errorf("Failures = %d, want 1", len(run.Failures))
	}
	if run.TotalFindings != 0 || run.TotalTables != 0 {
		t.Error("failed files must not contribute to totals")
	}
}
