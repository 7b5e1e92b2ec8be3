package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bisegni/tabl/pkg/engine"
	"github.com/bisegni/tabl/pkg/plan"
	"github.com/bisegni/tabl/pkg/planner"
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/selects"
	"github.com/bisegni/tabl/pkg/tabio"
	"github.com/bisegni/tabl/pkg/table"
)

// RunInteractive reads queries from a prompt and runs each one against the
// same input.
func RunInteractive(filename string) error {
	catalog, err := tabio.OpenCatalog(filename)
	if err != nil {
		return err
	}
	if filename == "" || filename == "-" {
		// Stdin can only be read once. Pin it in memory so every query
		// starts from the same rows.
		t, err := catalog.Default()
		if err != nil {
			return err
		}
		mem, err := table.Materialize(t)
		if err != nil {
			return err
		}
		catalog.Register(catalog.DefaultName(), mem)
	}

	fmt.Println("Interactive mode. Type 'tables' to list tables, 'exit' to leave.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tabl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
			break
		}
		if strings.EqualFold(trimmed, "tables") {
			for _, name := range catalog.Names() {
				if name == catalog.DefaultName() {
					fmt.Printf("%s (default)\n", name)
				} else {
					fmt.Println(name)
				}
			}
			continue
		}

		if err := runInteractiveQuery(catalog, trimmed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}

func runInteractiveQuery(catalog *tabio.Catalog, expression string) error {
	if strings.HasPrefix(strings.ToUpper(expression), "SELECT") {
		q, err := query.ParseQuery(expression)
		if err != nil {
			return err
		}
		root, err := planner.CreatePlan(q, catalog)
		if err != nil {
			return err
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

	if query.IsWhereExpression(expression) {
		t, err := catalog.Default()
		if err != nil {
			return err
		}
		view, err := selects.SelectExpr(t, expression)
		if err != nil {
			return err
		}
		return writeTable(view)
	}

	return fmt.Errorf("not a query: %q (want SELECT ... or a predicate like \"age > 25\")", expression)
}
