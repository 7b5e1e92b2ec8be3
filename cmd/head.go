package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/transform"
)

var headCount int

var headCmd = &cobra.Command{
	Use:   "head [file]",
	Short: "Keep only the first rows",
	Long: `Emit the first N rows of the input and stop reading. On a large
file this touches only the prefix it needs.

Examples:
  tabl head data.csv
  tabl head big.jsonl -n 3`,
	Args: cobra.ExactArgs(1),
	RunE: runHead,
}

func init() {
	headCmd.Flags().IntVarP(&headCount, "count", "n", 10, "Number of rows to keep")
}

func runHead(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	return writeTable(transform.Head(t, headCount))
}
