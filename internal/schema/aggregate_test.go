package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"sql-audit/internal/schema"
)

func TestAnalyzeFile_ReplacesInvalidUTF8(t *testing.T) {
	// A latin-1 export: 0xE9 and 0xFF are not valid UTF-8 sequences.
	raw := append([]byte("CREATE TABLE caf"), 0xE9, 0xFF)
	raw = append(raw, []byte("_menu (id INT PRIMARY KEY);\n")...)

	path := filepath.Join(t.TempDir(), "legacy.sql")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fr, err := schema.AnalyzeFile(path, "")
	if err != nil {
		t.Fatalf("AnalyzeFile should tolerate invalid bytes, got: %v", err)
	}

	if !utf8.ValidString(fr.Content) {
		t.Error("content should be valid UTF-8 after replacement")
	}
	if !strings.ContainsRune(fr.Content, utf8.RuneError) {
		t.Error("invalid bytes should be replaced with the replacement rune")
	}
	if len(fr.Tables) != 1 {
		t.Errorf("expected the table to survive decoding, got %d tables", len(fr.Tables))
	}
}

func TestAnalyzeFile_FillsFileFacts(t *testing.T) {
	sql := "CREATE DATABASE SHOP;\nCREATE TABLE t (id INT);\n"
	path := filepath.Join(t.TempDir(), "shop.sql")
	if err := os.WriteFile(path, []byte(sql), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fr, err := schema.AnalyzeFile(path, "")
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if fr.Path != path || fr.Filename != "shop.sql" {
		t.Errorf("Path/Filename = %q/%q", fr.Path, fr.Filename)
	}
	if fr.Database != "SHOP" || fr.Bytes != len(sql) || len(fr.Tables) != 1 {
		t.Errorf("unexpected facts: db=%q bytes=%d tables=%d", fr.Database, fr.Bytes, len(fr.Tables))
	}
}

func TestAnalyzeFile_MissingFileReturnsError(t *testing.T) {
	_, err := schema.AnalyzeFile(filepath.Join(t.TempDir(), "nope.sql"), "")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	// The caller records this as a Failure; the run must keep going.
	run := schema.Summarize(nil, []schema.Failure{{Path: "nope.sql", Err: err}})
	if len(run.Failures) != 1 || run.TotalTables != 0 {
		t.Errorf("failure not carried into the run summary: %+v", run)
	}
}
