package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/transform"
)

var (
	cutFields []string
	cutOut    bool
)

var cutCmd = &cobra.Command{
	Use:   "cut [file]",
	Short: "Keep (or drop) a subset of the fields",
	Long: `Project the input onto the named fields, in the order given. With
--out the sense inverts and the named fields are dropped instead, the rest
keeping their source order.

Examples:
  tabl cut data.csv -f name -f age
  tabl cut data.jsonl -f internal_id --out`,
	Args: cobra.ExactArgs(1),
	RunE: runCut,
}

func init() {
	cutCmd.Flags().StringSliceVarP(&cutFields, "field", "f", nil, "Field to keep, or drop with --out (repeatable)")
	cutCmd.Flags().BoolVar(&cutOut, "out", false, "Drop the named fields instead of keeping them")
	cutCmd.MarkFlagRequired("field")
}

func runCut(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	if cutOut {
		return writeTable(transform.CutOut(t, cutFields...))
	}
	return writeTable(transform.Cut(t, cutFields...))
}
