package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bisegni/tabl/pkg/tabio"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate a data file",
	Long: `Read a data file end to end and report whether it parses, how many
records it holds, and how many records differ from the header width.

Examples:
  tabl validate data.csv
  tabl validate data.jsonl
  cat data.json | tabl validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := "-"
	if len(args) > 0 {
		filename = args[0]
	}

	t, err := tabio.Open(filename)
	if err != nil {
		return err
	}
	it, err := t.Iterate()
	if err != nil {
		fmt.Printf("❌ Validation failed: %v\n", err)
		return err
	}
	defer it.Close()

	width := len(it.Fields())
	rows, ragged := 0, 0
	for it.Next() {
		rows++
		if len(it.Row()) != width {
			ragged++
		}
	}
	if err := it.Error(); err != nil {
		fmt.Printf("❌ Validation failed at record %d: %v\n", rows+1, err)
		return err
	}

	fmt.Printf("✅ Valid file with %d record(s), %d field(s)\n", rows, width)
	if ragged > 0 {
		fmt.Printf("   %d record(s) differ from the header width\n", ragged)
	}
	return nil
}
