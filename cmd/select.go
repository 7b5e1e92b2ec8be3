package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/selects"
	"github.com/bisegni/tabl/pkg/tabio"
)

var selectComplement bool

var selectCmd = &cobra.Command{
	Use:   "select [file] [expression]",
	Short: "Select rows matching a predicate expression",
	Long: `Select the rows where the predicate expression holds. Comparisons
against an absent field never match; --complement inverts the selection so
that the two runs together partition the input exactly.

Examples:
  tabl select data.csv "age > 25"
  tabl select data.jsonl "status = 'active' AND score >= 80"
  tabl select data.csv "city CONTAINS 'York'" --complement`,
	Args: cobra.ExactArgs(2),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectComplement, "complement", false, "Keep the rows the expression rejects")
}

func runSelect(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	var opts []selects.Option
	if selectComplement {
		opts = append(opts, selects.Complement())
	}
	view, err := selects.SelectExpr(t, args[1], opts...)
	if err != nil {
		return err
	}
	return writeTable(view)
}
