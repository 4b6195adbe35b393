package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"

	"sql-audit/internal/schema"
)

//go:embed template.html
var reportTemplate string

// cardColor is the accent palette for the overview cards, cycled per file.
type cardColor struct {
	BG     string
	Border string
}

var palette = []cardColor{
	{"#f0f7ff", "#0366d6"},
	{"#f0fff4", "#28a745"},
	{"#fff5f5", "#dc3545"},
	{"#fffbeb", "#f59e0b"},
	{"#f3e8ff", "#9333ea"},
	{"#ecfdf5", "#10b981"},
}

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"kinds": schema.Kinds,
	"comma": comma,
	"kb":    kb,
	"badge": badge,
	"card":  func(i int) cardColor { return palette[i%len(palette)] },
	"tabID": func(i int) string { return fmt.Sprintf("file-%d", i) },
}).Parse(reportTemplate))

// Render writes the self-contained HTML document for one run.
func Render(w io.Writer, run *schema.RunReport) error {
	return tpl.Execute(w, run)
}

// WriteFile renders the report to path. Unlike everything upstream, a
// failure here is fatal for the run.
func WriteFile(path string, run *schema.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, run); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// badge picks the anomaly badge color: green when clean, amber below ten,
// red from ten up.
func badge(count int) string {
	switch {
	case count == 0:
		return "#28a745"
	case count < 10:
		return "#f59e0b"
	}
	return "#dc3545"
}

func kb(bytes int) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}

// comma formats n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + comma(-n)
	}
	if len(s) <= 3 {
		return s
	}
	return comma(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
