package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/reduce"
	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var mergeKeys []string

var mergeCmd = &cobra.Command{
	Use:   "merge [file...]",
	Short: "Merge tables, resolving duplicate keys field by field",
	Long: `Merge one or more tables into a single table with one row per key.
The inputs are combined and sorted on the key, then rows sharing a key are
collapsed field by field: a field with one distinct non-missing value keeps
it, and a field with several becomes a conflict listing them all.

Examples:
  tabl merge a.csv b.csv -k id
  tabl merge 2023.jsonl 2024.jsonl -k id -k region`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringSliceVarP(&mergeKeys, "key", "k", nil, "Field(s) identifying a row (repeatable)")
	mergeCmd.MarkFlagRequired("key")
}

func runMerge(cmd *cobra.Command, args []string) error {
	tables := make([]table.Table, 0, len(args))
	for _, path := range args {
		t, err := tabio.Open(path)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	return writeTable(reduce.Merge(table.On(mergeKeys...), tables...))
}
