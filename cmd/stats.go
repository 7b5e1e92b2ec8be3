package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file|-]",
	Short: "Show statistics about a data file",
	Long: `Display statistics about a data file: record count and, per field,
a histogram of the value types seen.

Examples:
  tabl stats data.csv
  tabl stats data.jsonl
  cat data.json | tabl stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	filename := "-"
	if len(args) > 0 {
		filename = args[0]
	}

	t, err := tabio.Open(filename)
	if err != nil {
		return err
	}
	it, err := t.Iterate()
	if err != nil {
		return err
	}
	defer it.Close()

	fields := it.Fields()
	counts := make([]map[string]int, len(fields))
	for i := range counts {
		counts[i] = make(map[string]int)
	}

	total := 0
	for it.Next() {
		total++
		row := it.Row()
		for i := range fields {
			if i >= len(row) {
				counts[i]["missing"]++
				continue
			}
			counts[i][typeName(row[i])]++
		}
	}
	if err := it.Error(); err != nil {
		return err
	}

	if filename == "-" {
		fmt.Printf("File: <stdin>\n")
	} else {
		fmt.Printf("File: %s\n", filename)
	}
	fmt.Printf("Total records: %d\n", total)

	if len(fields) > 0 {
		fmt.Printf("\nFields:\n")
		for i, field := range fields {
			fmt.Printf("  %s:\n", field)
			for _, typ := range typeOrder {
				if n := counts[i][typ]; n > 0 {
					fmt.Printf("    %s: %d (%.1f%%)\n", typ, n, float64(n)/float64(total)*100)
				}
			}
		}
	}

	return nil
}

// typeOrder keeps the per-field histogram deterministic.
var typeOrder = []string{"null", "boolean", "number", "string", "array", "object", "missing", "unknown"}

func typeName(v interface{}) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "boolean"
	case string:
		return "string"
	case []interface{}, table.Row:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	if _, ok := table.Float64(v); ok {
		return "number"
	}
	return "unknown"
}
