package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/bisegni/tabl/pkg/logger"
	"github.com/bisegni/tabl/pkg/plan"
	"github.com/bisegni/tabl/pkg/tabio"
)

// Executor runs a plan and streams its rows to a writer.
type Executor struct {
	Format string // jsonl or csv
	Pretty bool   // indent JSON output
}

func NewExecutor() *Executor {
	return &Executor{Format: "jsonl"}
}

// Execute opens the plan's iterator and writes every row in the configured
// output format.
func (e *Executor) Execute(root plan.Node, w io.Writer) error {
	logger.Debug("executing plan", "plan", plan.FormatPlan(root))

	it, err := root.Execute()
	if err != nil {
		return err
	}
	defer it.Close()

	switch strings.ToLower(e.Format) {
	case "", "jsonl":
		return tabio.WriteJSONL(w, it, e.Pretty)
	case "csv":
		return tabio.WriteCSV(w, it)
	default:
		return fmt.Errorf("unknown output format %q", e.Format)
	}
}
