package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var (
	sortKeys    []string
	sortReverse bool
	sortBuffer  int
	sortTempDir string
)

var sortCmd = &cobra.Command{
	Use:   "sort [file]",
	Short: "Sort rows by one or more key fields",
	Long: `Sort the input by the given key fields, or by whole-row comparison
when no key is given. The sort is stable and spills to temporary files when
the input exceeds the in-memory buffer, so inputs larger than memory work.

Examples:
  tabl sort data.csv -k age
  tabl sort data.csv -k city -k name --reverse
  tabl sort big.jsonl -k id --buffer 50000 --tempdir /var/tmp`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringSliceVarP(&sortKeys, "key", "k", nil, "Field(s) to sort by (repeatable)")
	sortCmd.Flags().BoolVarP(&sortReverse, "reverse", "r", false, "Sort in descending order")
	sortCmd.Flags().IntVar(&sortBuffer, "buffer", 0, "Rows to sort in memory before spilling to disk")
	sortCmd.Flags().StringVar(&sortTempDir, "tempdir", "", "Directory for spilled sort runs")
}

func runSort(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	var opts []sorts.Option
	if sortReverse {
		opts = append(opts, sorts.Reverse())
	}
	if sortBuffer > 0 {
		opts = append(opts, sorts.Buffer(sortBuffer))
	}
	if sortTempDir != "" {
		opts = append(opts, sorts.TempDir(sortTempDir))
	}
	return writeTable(sorts.Sort(t, table.On(sortKeys...), opts...))
}
