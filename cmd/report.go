package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"sql-audit/internal/report"
	"sql-audit/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dryRun bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze SQL files and generate the HTML report",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolution strategy per setting:
		// 1. CLI flag
		// 2. Active profile from config
		// 3. Viper default
		dir := viper.GetString("scan.dir")
		out := viper.GetString("scan.output")
		prefix := viper.GetString("scan.fk_prefix")

		if active, err := GetActiveProfile(); err == nil {
			fmt.Printf("🔍 Using profile: %s\n", active.Name)
			if active.Dir != "" && !cmd.Flags().Changed("dir") {
				dir = active.Dir
			}
			if active.Output != "" && !cmd.Flags().Changed("out") {
				out = active.Output
			}
			if active.FKPrefix != "" && !cmd.Flags().Changed("fk-prefix") {
				prefix = active.FKPrefix
			}
		}

		// 1. Discover (non-recursive, stable order)
		paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		sort.Strings(paths)

		if len(paths) == 0 {
			// Not an error: report it and finish cleanly with no output file.
			fmt.Printf("❌ No SQL files found in %s\n", dir)
			return nil
		}
		fmt.Printf("✅ Found %d SQL file(s)\n", len(paths))

		start := time.Now()

		// 2. Setup Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(len(paths)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Analyzing: "
		})

		// 3. Analyze each file. Read failures are isolated: record and move on.
		var files []*schema.FileReport
		var failures []schema.Failure
		for _, path := range paths {
			fileReport, err := schema.AnalyzeFile(path, prefix)
			if err != nil {
				failures = append(failures, schema.Failure{Path: path, Err: err})
			} else {
				files = append(files, fileReport)
			}
			bar.Incr()
		}

		uiprogress.Stop()

		// 4. Fold into the run summary
		run := schema.Summarize(files, failures)

		// 5. Final Report
		fmt.Println("\n📊 Analysis Results:")
		for i, f := range run.Files {
			fmt.Printf("[%02d/%02d] %-24s : %d tables, %d lines, %d anomalies\n",
				i+1, len(run.Files), f.Filename, len(f.Tables), f.Lines, f.AnomalyCount())
			if f.Skipped > 0 {
				fmt.Printf("    └ Skipped %d malformed CREATE TABLE span(s)\n", f.Skipped)
			}
		}
		for _, fail := range run.Failures {
			fmt.Printf("[!] %-24s : %v (skipped)\n", fail.Path, fail.Err)
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total tables: %d\n", run.TotalTables)
		fmt.Printf("Total lines: %d\n", run.TotalLines)
		fmt.Printf("⚠️  Total anomalies detected: %d\n", run.TotalFindings)
		for _, k := range schema.Kinds() {
			fmt.Printf("   - %s: %d\n", k.Label(), run.ByKind[k])
		}

		if dryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: No report file will be written.")
			return nil
		}

		// 6. Write HTML. This is the one step whose failure aborts the run.
		if err := report.WriteFile(out, run); err != nil {
			return err
		}

		log.Printf("Report Done! Time Elapsed: %s", time.Since(start))
		fmt.Printf("🌐 Open %s in your browser to view the report!\n", out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)

	// CLI Flags (out and fk-prefix are read through their viper bindings)
	reportCmd.Flags().String("out", "index.html", "Output HTML file path")
	reportCmd.Flags().String("fk-prefix", schema.DefaultFKPrefix, "Column name prefix that marks a foreign-key-like column")
	reportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze and print the summary without writing the report")

	viper.BindPFlag("scan.output", reportCmd.Flags().Lookup("out"))
	viper.BindPFlag("scan.fk_prefix", reportCmd.Flags().Lookup("fk-prefix"))
	viper.SetDefault("scan.output", "index.html")
	viper.SetDefault("scan.fk_prefix", schema.DefaultFKPrefix)
}
