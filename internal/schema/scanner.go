package schema

import (
	"regexp"
	"strings"
)

// DefaultFKPrefix marks columns that look like foreign keys by naming
// convention (e.g. FKY_CUSTOMER) even when no constraint backs them.
const DefaultFKPrefix = "FKY_"

// Scanner extracts table structure from raw SQL text. It is a lexical
// heuristic, not a SQL parser: pattern matching only, no grammar, no
// validation. Swapping in a real parser later must not change the
// Classify or render contracts.
type Scanner struct {
	FKPrefix string
}

func NewScanner(fkPrefix string) *Scanner {
	if fkPrefix == "" {
		fkPrefix = DefaultFKPrefix
	}
	return &Scanner{FKPrefix: fkPrefix}
}

var (
	identPattern = "[`\"\\[]?[\\w.$\\p{L}]+[`\"\\]]?"

	createTableRe    = regexp.MustCompile(`(?i)\bCREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(` + identPattern + `)`)
	createIndexRe    = regexp.MustCompile(`(?i)\bCREATE\s+(?:UNIQUE\s+)?INDEX\s+` + identPattern + `\s+ON\s+(` + identPattern + `)`)
	createDatabaseRe = regexp.MustCompile(`(?i)\bCREATE\s+DATABASE\s+(?:IF\s+NOT\s+EXISTS\s+)?(` + identPattern + `)`)
	lineCommentRe    = regexp.MustCompile(`--[^\n]*`)
)

// Scan returns one Table per well-formed CREATE TABLE statement, in source
// order, plus the number of spans skipped as malformed (unbalanced parens,
// zero parsed columns). Re-scanning identical text yields identical records.
func (s *Scanner) Scan(text string) ([]*Table, int) {
	text = stripComments(text)

	var tables []*Table
	skipped := 0

	for _, m := range createTableRe.FindAllStringSubmatchIndex(text, -1) {
		name := trimIdent(text[m[2]:m[3]])
		body, ok := tableBody(text[m[3]:])
		if !ok {
			skipped++
			continue
		}
		t := s.parseBody(name, body)
		if len(t.Columns) == 0 {
			skipped++
			continue
		}
		tables = append(tables, t)
	}

	// Standalone CREATE INDEX ... ON <table> statements count as coverage
	// for the referenced table, same as inline INDEX/KEY clauses.
	indexed := make(map[string]bool)
	for _, m := range createIndexRe.FindAllStringSubmatch(text, -1) {
		indexed[strings.ToUpper(trimIdent(m[1]))] = true
	}
	for _, t := range tables {
		if indexed[strings.ToUpper(t.Name)] {
			t.HasIndex = true
		}
	}

	return tables, skipped
}

// DatabaseName extracts the identifier of the first CREATE DATABASE
// statement, or "" if the file has none.
func DatabaseName(text string) string {
	m := createDatabaseRe.FindStringSubmatch(stripComments(text))
	if m == nil {
		return ""
	}
	return trimIdent(m[1])
}

// parseBody splits a CREATE TABLE body into top-level clauses and folds
// each into either a column or a constraint flag.
func (s *Scanner) parseBody(name, body string) *Table {
	t := &Table{Name: name}

	for _, clause := range splitClauses(body) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		fields := strings.Fields(clause)
		upper := strings.ToUpper(clause)

		switch strings.ToUpper(fields[0]) {
		case "CONSTRAINT":
			if strings.Contains(upper, "PRIMARY KEY") {
				t.HasPrimaryKey = true
			}
			if strings.Contains(upper, "FOREIGN KEY") {
				t.HasForeignKey = true
			}
			if strings.Contains(upper, "UNIQUE") {
				t.HasIndex = true
			}
		case "PRIMARY":
			t.HasPrimaryKey = true
		case "FOREIGN":
			t.HasForeignKey = true
		case "INDEX", "KEY", "UNIQUE":
			t.HasIndex = true
		default:
			if len(fields) < 2 {
				continue // name without a type, not a column we can use
			}
			col := &Column{
				Name:     trimIdent(fields[0]),
				Type:     fields[1],
				Nullable: !strings.Contains(upper, "NOT NULL"),
			}
			if strings.Contains(upper, "PRIMARY KEY") {
				t.HasPrimaryKey = true
				col.Nullable = false
			}
			t.Columns = append(t.Columns, col)
		}
	}

	// Naming-convention check runs only when nothing in the body declares
	// a real FOREIGN KEY.
	if !t.HasForeignKey {
		prefix := strings.ToUpper(s.FKPrefix)
		for _, c := range t.Columns {
			if strings.HasPrefix(strings.ToUpper(c.Name), prefix) {
				t.FKLikeColumns = append(t.FKLikeColumns, c.Name)
			}
		}
	}

	return t
}

// tableBody returns the text between the statement's outer parens,
// respecting nesting so DECIMAL(10,2) does not end the body early.
func tableBody(rest string) (string, bool) {
	open := strings.IndexByte(rest, '(')
	semi := strings.IndexByte(rest, ';')
	if open < 0 || (semi >= 0 && semi < open) {
		return "", false
	}

	depth := 0
	for i := open; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return rest[open+1 : i], true
			}
		}
	}
	return "", false // unbalanced
}

// splitClauses splits a table body on commas outside nested parens.
func splitClauses(body string) []string {
	var clauses []string
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				clauses = append(clauses, body[last:i])
				last = i + 1
			}
		}
	}
	return append(clauses, body[last:])
}

func stripComments(text string) string {
	return lineCommentRe.ReplaceAllString(text, "")
}

func trimIdent(s string) string {
	return strings.Trim(s, "`\"[];")
}
