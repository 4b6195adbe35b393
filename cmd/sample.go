package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sampleFiles  int
	sampleTables int
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var columnTypes = []string{
	"INT", "INTEGER", "VARCHAR(50)", "VARCHAR(255)",
	"DECIMAL(10,2)", "DATE", "CHAR(10)",
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate demo SQL schema files to run the report against",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("scan.dir")

		log.Printf("Generating %d demo file(s) with %d table(s) each...", sampleFiles, sampleTables)

		for i := 1; i <= sampleFiles; i++ {
			var b strings.Builder
			b.WriteString("-- Demo schema generated by sql-audit sample. Safe to delete.\n")
			b.WriteString(fmt.Sprintf("CREATE DATABASE %s_DB;\n\n", strings.ToUpper(gofakeit.Noun())))

			for j := 0; j < sampleTables; j++ {
				b.WriteString(sampleTable())
			}

			path := filepath.Join(dir, fmt.Sprintf("demo_schema_%d.sql", i))
			if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Printf("📄 Wrote %s\n", path)
		}

		fmt.Println("✅ Demo schemas ready. Run `sql-audit report` to analyze them.")
		return nil
	},
}

// sampleTable builds one randomized CREATE TABLE statement. The shapes are
// deliberately uneven (missing PKs, FKY_ columns, over-long names) so a demo
// run exercises every anomaly rule.
func sampleTable() string {
	name := strings.ToUpper(gofakeit.Noun() + "_" + gofakeit.Noun())
	if seededRand.Intn(6) == 0 {
		name += "_" + strings.ToUpper(gofakeit.Noun()) + "_ARCHIVE_HISTORY_DETAIL"
	}

	var clauses []string
	if seededRand.Intn(4) != 0 {
		clauses = append(clauses, "ID INT PRIMARY KEY")
	}

	colCount := seededRand.Intn(6) + 1
	for c := 0; c < colCount; c++ {
		clause := strings.ToUpper(gofakeit.Noun()) + " " + columnTypes[seededRand.Intn(len(columnTypes))]
		if seededRand.Intn(2) == 0 {
			clause += " NOT NULL"
		}
		clauses = append(clauses, clause)
	}

	if seededRand.Intn(3) == 0 {
		clauses = append(clauses, "FKY_"+strings.ToUpper(gofakeit.Noun())+" INT")
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (\n    %s\n);\n", name, strings.Join(clauses, ",\n    "))

	if seededRand.Intn(3) == 0 {
		first := strings.Fields(clauses[0])[0]
		stmt += fmt.Sprintf("CREATE INDEX IDX_%s ON %s (%s);\n", name, name, first)
	}

	return stmt + "\n"
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&sampleFiles, "files", 2, "Number of demo .sql files to generate")
	sampleCmd.Flags().IntVar(&sampleTables, "tables", 5, "Number of tables per demo file")
}
