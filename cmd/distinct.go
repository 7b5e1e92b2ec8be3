package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/transform"
)

var distinctCmd = &cobra.Command{
	Use:   "distinct [file]",
	Short: "Drop duplicate rows",
	Long: `Emit each distinct row once. Rows are compared whole, so two rows
are duplicates only when every cell matches.

Examples:
  tabl distinct data.csv
  tabl cut data.csv -f city | tabl distinct -`,
	Args: cobra.ExactArgs(1),
	RunE: runDistinct,
}

func runDistinct(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	return writeTable(transform.Distinct(t))
}
