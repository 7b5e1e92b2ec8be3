package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/engine"
	"github.com/bisegni/tabl/pkg/logger"
	"github.com/bisegni/tabl/pkg/plan"
	"github.com/bisegni/tabl/pkg/planner"
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/selects"
	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

var (
	OutputFormat    string
	OutputPretty    bool
	ExplainPlan     bool
	LogLevel        string
	InteractiveMode bool
)

var rootCmd = &cobra.Command{
	Use:   "tabl [file] [query]",
	Short: "Query and transform tabular data files",
	Long: `tabl is a command-line tool for querying, filtering and aggregating
tabular data files (CSV, JSONL, SQLite).

The optional query argument is either a SELECT statement or a bare
predicate expression; without it the input is dumped in the selected
output format.

Examples:
  tabl data.csv "SELECT city, COUNT(*) AS n GROUP BY city ORDER BY n DESC"
  tabl data.csv "age > 25 AND status = 'active'"
  cat data.jsonl | tabl "price >= 10"
  tabl chinook.db "SELECT * FROM tracks WHERE composer CONTAINS 'Bach'"
  tabl data.csv --format csv`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		var filename, expression string
		switch len(args) {
		case 0:
			if !hasStdin && !InteractiveMode {
				return cmd.Help()
			}
			filename = "-"
		case 1:
			// a lone argument is the query when data arrives on stdin
			if hasStdin && looksLikeQuery(args[0]) {
				filename = "-"
				expression = args[0]
			} else {
				filename = args[0]
			}
		default:
			filename = args[0]
			expression = args[1]
		}

		if InteractiveMode {
			return RunInteractive(filename)
		}
		return RunExpression(filename, expression)
	},
}

func looksLikeQuery(s string) bool {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "SELECT") {
		return true
	}
	return query.IsWhereExpression(s)
}

// RunExpression routes a query string: SELECT statements go through the
// planner, bare predicates become a filter, an empty string dumps the
// input.
func RunExpression(filename, expression string) error {
	expression = strings.TrimSpace(expression)

	if strings.HasPrefix(strings.ToUpper(expression), "SELECT") {
		return RunQuery(filename, expression)
	}

	t, err := tabio.Open(filename)
	if err != nil {
		return err
	}
	if expression != "" {
		view, err := selects.SelectExpr(t, expression)
		if err != nil {
			return err
		}
		t = view
	}
	return writeTable(t)
}

// RunQuery plans and executes a SELECT statement against the file's
// catalog.
func RunQuery(filename, statement string) error {
	q, err := query.ParseQuery(statement)
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	catalog, err := tabio.OpenCatalog(filename)
	if err != nil {
		return err
	}

	root, err := planner.CreatePlan(q, catalog)
	if err != nil {
		return fmt.Errorf("planning error: %w", err)
	}

	if ExplainPlan {
		fmt.Println("Execution Plan:")
		fmt.Print(plan.FormatPlan(root))
		return nil
	}

	executor := engine.NewExecutor()
	executor.Format = OutputFormat
	executor.Pretty = OutputPretty
	return executor.Execute(root, os.Stdout)
}

// writeTable dumps a table to stdout in the selected output format.
func writeTable(t table.Table) error {
	it, err := t.Iterate()
	if err != nil {
		return err
	}
	defer it.Close()

	switch strings.ToLower(OutputFormat) {
	case "", "jsonl":
		return tabio.WriteJSONL(os.Stdout, it, OutputPretty)
	case "csv":
		return tabio.WriteCSV(os.Stdout, it)
	default:
		return fmt.Errorf("unknown output format %q", OutputFormat)
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		logger.Init(logger.Config{Level: LogLevel, Format: "text"})
	})

	rootCmd.PersistentFlags().StringVar(&OutputFormat, "format", "jsonl", "Output format (jsonl or csv)")
	rootCmd.PersistentFlags().BoolVar(&OutputPretty, "pretty", false, "Pretty print JSON output")
	rootCmd.PersistentFlags().BoolVar(&ExplainPlan, "explain", false, "Print the execution plan instead of running")
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(distinctCmd)
	rootCmd.AddCommand(cutCmd)
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
}
