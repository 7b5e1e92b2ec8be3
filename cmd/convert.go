package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var convertTableName string

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a data file between formats",
	Long: `Convert between the supported formats, picked by file extension:
CSV, JSON/JSONL, and SQLite. When the SQLite side needs a table name, --table
supplies it; writing defaults to the input file's basename.

Examples:
  tabl convert data.csv data.jsonl
  tabl convert data.jsonl data.db
  tabl convert data.db report.csv --table orders`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTableName, "table", "", "Table name on the SQLite side")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	catalog, err := tabio.OpenCatalog(in)
	if err != nil {
		return err
	}
	var t table.Table
	if convertTableName != "" && tabio.IsSQLitePath(in) {
		t, err = catalog.Get(convertTableName)
	} else {
		t, err = catalog.Default()
	}
	if err != nil {
		return err
	}

	it, err := t.Iterate()
	if err != nil {
		return err
	}
	defer it.Close()

	if tabio.IsSQLitePath(out) {
		name := convertTableName
		if name == "" {
			name = catalog.DefaultName()
		}
		return tabio.WriteSQLite(out, name, it)
	}

	ext := strings.ToLower(filepath.Ext(out))
	switch ext {
	case ".csv", ".json", ".jsonl", ".ndjson":
	default:
		return fmt.Errorf("%s: unsupported output extension %q", out, filepath.Ext(out))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".csv" {
		return tabio.WriteCSV(f, it)
	}
	return tabio.WriteJSONL(f, it, OutputPretty)
}
