package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/planner"
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/reduce"
	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var (
	aggregateKeys  []string
	aggregateSpecs []string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [file]",
	Short: "Group rows and compute aggregate values per group",
	Long: `Group the input on one or more key fields and compute an aggregate
value per group. Without --key the whole table forms a single group, so the
output is one row of global aggregates.

Each --agg takes the form name=FUNC(field), where FUNC is one of COUNT, SUM,
MIN, MAX, AVG, FIRST, LAST, LIST or STRJOIN. COUNT also accepts *, and
STRJOIN an optional quoted separator after the field.

Examples:
  tabl aggregate data.csv -k city -a "count=COUNT(*)" -a "total=SUM(amount)"
  tabl aggregate data.jsonl -a "rows=COUNT(*)"
  tabl aggregate data.csv -k dept -a "names=STRJOIN(name,'; ')"`,
	Args: cobra.ExactArgs(1),
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().StringSliceVarP(&aggregateKeys, "key", "k", nil, "Field(s) to group by (repeatable)")
	aggregateCmd.Flags().StringArrayVarP(&aggregateSpecs, "agg", "a", nil, "Aggregation as name=FUNC(field) (repeatable)")
	aggregateCmd.MarkFlagRequired("agg")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	t, err := tabio.Open(args[0])
	if err != nil {
		return err
	}
	agg := reduce.NewAggregation()
	for _, raw := range aggregateSpecs {
		name, spec, err := parseAggSpec(raw)
		if err != nil {
			return err
		}
		agg.Set(name, spec)
	}
	return writeTable(reduce.Aggregate(t, table.On(aggregateKeys...), agg))
}

// parseAggSpec turns "name=FUNC(field)" into an output column name and its
// reduction spec. The name is optional and defaults to the same derived
// column name the SQL layer would use.
func parseAggSpec(raw string) (string, reduce.AggSpec, error) {
	expr := raw
	var alias string
	if i := strings.Index(raw, "="); i >= 0 {
		alias = strings.TrimSpace(raw[:i])
		expr = raw[i+1:]
	}
	expr = strings.TrimSpace(expr)

	open := strings.Index(expr, "(")
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", reduce.AggSpec{}, fmt.Errorf("invalid aggregation %q: want name=FUNC(field)", raw)
	}
	f := query.Field{
		Alias:     alias,
		Aggregate: strings.ToUpper(strings.TrimSpace(expr[:open])),
	}
	arg := strings.TrimSpace(expr[open+1 : len(expr)-1])
	if arg == "*" {
		f.Star = true
	} else {
		if i := strings.Index(arg, ","); i >= 0 {
			sep := strings.TrimSpace(arg[i+1:])
			f.Sep = strings.Trim(sep, `'"`)
			arg = strings.TrimSpace(arg[:i])
		} else {
			f.Sep = ", "
		}
		f.Name = arg
	}
	if f.Name == "" && !f.Star {
		return "", reduce.AggSpec{}, fmt.Errorf("invalid aggregation %q: missing field", raw)
	}
	spec, err := planner.AggSpecFor(f)
	if err != nil {
		return "", reduce.AggSpec{}, fmt.Errorf("invalid aggregation %q: %w", raw, err)
	}
	return f.OutName(), spec, nil
}
